package registry

import "sync/atomic"

// View gives access to the registry that is current at the time of the call.
type View interface {
	Current() *Registry
}

// Holder owns the current registry of a process. Readers call Current on
// every access; a reload installs a new registry with Swap.
type Holder struct {
	current atomic.Pointer[Registry]
}

// NewHolder returns an uninitialized holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the installed registry, or nil before the first load.
func (h *Holder) Current() *Registry {
	return h.current.Load()
}

// Ready reports whether a registry has been installed.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}

// Swap installs r and returns the previously installed registry.
func (h *Holder) Swap(r *Registry) *Registry {
	if r == nil {
		panic("registry: cannot install a nil registry")
	}
	return h.current.Swap(r)
}
