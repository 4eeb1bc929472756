// Package config defines the format-agnostic declaration model produced by
// the collector, along with the interfaces (Loader, MergePoint) that feed it.
//
// A Collection is the single input of the builder pipeline. Concrete
// implementations of the interfaces, such as the HCL collector and the Lua
// script bridge, live in separate packages.
package config
