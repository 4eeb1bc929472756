package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/registry"
)

type entryResponse struct {
	ID  uint16 `json:"id"`
	Key string `json:"key"`
}

type recordResponse struct {
	Category string         `json:"category"`
	ID       uint16         `json:"id"`
	Key      string         `json:"key"`
	Record   content.Record `json:"record"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the HTTP routes of the app.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /registry/{category}", a.listHandler)
	mux.HandleFunc("GET /registry/{category}/{key}", a.recordHandler)
	mux.HandleFunc("POST /reload", a.reloadHandler)
	return mux
}

// healthHandler reports liveness; the registry does not need to be ready.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) listHandler(w http.ResponseWriter, r *http.Request) {
	reg, cat, ok := a.lookupCategory(w, r)
	if !ok {
		return
	}
	items := reg.Enumerate(cat)
	out := make([]entryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, entryResponse{ID: it.ID, Key: it.Record.RecordKey().String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) recordHandler(w http.ResponseWriter, r *http.Request) {
	reg, cat, ok := a.lookupCategory(w, r)
	if !ok {
		return
	}
	key := r.PathValue("key")
	id, found := reg.IDByName(cat, key)
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no %s named %q", cat, key)})
		return
	}
	rec, err := reg.Get(cat, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{Category: cat.String(), ID: id, Key: key, Record: rec})
}

func (a *App) reloadHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Reload(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *App) lookupCategory(w http.ResponseWriter, r *http.Request) (*registry.Registry, content.Category, bool) {
	cat, err := content.ParseCategory(r.PathValue("category"))
	if err != nil || !cat.Registered() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown category %q", r.PathValue("category"))})
		return nil, 0, false
	}
	reg := a.Current()
	if reg == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "registry is not loaded"})
		return nil, 0, false
	}
	return reg, cat, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// startServer binds the configured port and serves in the background.
func (a *App) startServer(port int) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	a.httpServer = &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("🩺 Registry server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Registry server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

func (a *App) shutdownServer() error {
	if a.httpServer == nil {
		a.logger.Debug("Registry server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down registry server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Registry server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Registry server shut down gracefully.")
	return nil
}
