// Package app contains the core application logic. It owns the content
// registry of the process, runs the load pipeline, and serves the registry
// over HTTP, decoupled from any specific entrypoint like a CLI.
package app
