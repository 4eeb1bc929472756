package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/contentgrid/internal/builder"
	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/hcl"
	"github.com/specialistvlad/contentgrid/internal/mappingstore"
	"github.com/specialistvlad/contentgrid/internal/registry"
	"github.com/specialistvlad/contentgrid/internal/script"
	"github.com/specialistvlad/contentgrid/internal/storage/sqlite"
)

// ErrScriptsDisabled is returned by Eval when the app runs without the
// script bridge.
var ErrScriptsDisabled = errors.New("app: scripts are disabled")

// State is the lifecycle state of the registry an App serves.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	loader     config.Loader
	mergePoint config.MergePoint
	bridge     *script.Bridge
	store      mappingstore.Store

	holder     *registry.Holder
	reloadMu   sync.Mutex // single writer for the holder
	lastReport atomic.Pointer[builder.Report]

	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithLoader replaces the HCL collector.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithMergePoint replaces the Lua script bridge.
func WithMergePoint(mp config.MergePoint) Option {
	return func(a *App) { a.mergePoint = mp }
}

// WithStore replaces the persistent mapping store opened from MappingPath.
func WithStore(s mappingstore.Store) Option {
	return func(a *App) { a.store = s }
}

// NewApp is the constructor for the main application. It returns an App in
// StateUninitialized with its own isolated logger and registry holder.
func NewApp(ctx context.Context, outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		holder: registry.NewHolder(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.loader == nil {
		a.loader = hcl.NewLoader()
	}
	if a.mergePoint == nil && cfg.ScriptsEnabled {
		a.mergePoint = script.New(a.holder)
	}
	if b, ok := a.mergePoint.(*script.Bridge); ok {
		a.bridge = b
	}
	if a.store == nil && cfg.MappingPath != "" {
		store, err := sqlite.Open(ctx, cfg.MappingPath)
		if err != nil {
			return nil, err
		}
		a.store = store
		logger.Debug("Persistent mapping store opened.", "path", cfg.MappingPath)
	}

	logger.Debug("App constructed.", "modules_path", cfg.ModulesPath, "scripts", a.mergePoint != nil, "mapping", a.store != nil)
	return a, nil
}

// State reports whether a registry has been installed.
func (a *App) State() State {
	if a.holder.Ready() {
		return StateReady
	}
	return StateUninitialized
}

// Current returns the installed registry, or nil before Load.
func (a *App) Current() *registry.Registry {
	return a.holder.Current()
}

// View returns the holder readers should keep instead of a registry value.
func (a *App) View() registry.View {
	return a.holder
}

// LastReport returns the report of the build that produced the current
// registry. It is empty when the registry was restored from the mapping store.
func (a *App) LastReport() *builder.Report {
	return a.lastReport.Load()
}

// Eval runs a Lua chunk against the script state of the last load. A chunk
// that calls Core.reload triggers a Reload once it has returned.
func (a *App) Eval(ctx context.Context, chunk string) (any, error) {
	if a.bridge == nil {
		return nil, ErrScriptsDisabled
	}
	result, err := a.bridge.Eval(ctxlog.WithLogger(ctx, a.logger), chunk)
	if err != nil {
		return nil, err
	}
	if a.bridge.TakeReloadRequest() {
		a.logger.Info("Reload requested by script.")
		if _, err := a.Reload(ctx); err != nil {
			return result, fmt.Errorf("failed to reload on script request: %w", err)
		}
	}
	return result, nil
}

// Close releases the mapping store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
