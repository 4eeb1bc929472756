package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/contentgrid/internal/builder"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/fsutil"
	"github.com/specialistvlad/contentgrid/internal/hcl"
	"github.com/specialistvlad/contentgrid/internal/registry"
	"github.com/specialistvlad/contentgrid/internal/script"
)

// Load runs the pipeline and installs the first registry. Calling Load on
// a ready App does nothing; use Reload to rebuild.
func (a *App) Load(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	if a.holder.Ready() {
		a.logger.Debug("Registry already loaded, skipping.")
		return nil
	}

	reg, report, err := a.build(ctx)
	if err != nil {
		return err
	}
	a.install(reg, report)

	stats := reg.Stats()
	a.logger.Info("Content registry loaded.",
		"records", stats.Total(),
		"tiles", stats.Tiles,
		"grounds", stats.Grounds,
		"items", stats.Items,
		"excluded", len(report.Diagnostics),
	)
	return nil
}

// Reload builds a brand-new registry and swaps it in. On failure the
// previous registry stays installed and the error is returned.
func (a *App) Reload(ctx context.Context) (registry.Stats, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	reg, report, err := a.build(ctx)
	if err != nil {
		a.logger.Error("Reload failed, keeping the previous registry.", "error", err)
		return registry.Stats{}, err
	}
	a.install(reg, report)

	stats := reg.Stats()
	a.logger.Info("Content registry reloaded.", "records", stats.Total(), "excluded", len(report.Diagnostics))
	return stats, nil
}

func (a *App) install(reg *registry.Registry, report *builder.Report) {
	a.lastReport.Store(report)
	a.holder.Swap(reg)
}

// build produces a registry from the mapping store when the module tree is
// unchanged, or from the full pipeline otherwise.
func (a *App) build(ctx context.Context) (*registry.Registry, *builder.Report, error) {
	root := a.config.ModulesPath
	ctx = ctxlog.With(ctx, "modules", root)
	logger := ctxlog.FromContext(ctx)

	fingerprint := ""
	if a.store != nil {
		fp, err := fsutil.Fingerprint(root, hcl.Extension, script.Extension)
		if err != nil {
			logger.Warn("Mapping: cannot fingerprint modules, skipping the cache.", "error", err)
		} else {
			fingerprint = a.cacheKey(fp)
			if reg, ok := a.restore(ctx, fingerprint); ok {
				// Scripts still run so that their state and bindings exist.
				if a.mergePoint != nil {
					if _, err := a.mergePoint.PostCollection(ctx, root); err != nil {
						return nil, nil, fmt.Errorf("failed to run scripts: %w", err)
					}
				}
				return reg, &builder.Report{}, nil
			}
		}
	}

	col, err := a.loader.Load(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect declarations: %w", err)
	}
	if a.mergePoint != nil {
		decls, err := a.mergePoint.PostCollection(ctx, root)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to run scripts: %w", err)
		}
		col.Merge(decls)
		logger.Debug("Script declarations merged.", "count", len(decls))
	}

	reg, report, err := builder.Build(ctx, col)
	if err != nil {
		return nil, report, fmt.Errorf("failed to build registry: %w", err)
	}

	if fingerprint != "" {
		if err := a.store.Save(ctx, fingerprint, reg.Snapshot()); err != nil {
			logger.Warn("Mapping: failed to save.", "error", err)
		} else {
			logger.Debug("Mapping: saved.", "fingerprint", fingerprint)
		}
	}
	return reg, report, nil
}

// cacheKey ties a module tree fingerprint to whether scripts contribute
// declarations, so toggling scripts never restores the other registry.
func (a *App) cacheKey(fingerprint string) string {
	return fmt.Sprintf("%s;scripts=%t", fingerprint, a.mergePoint != nil)
}

func (a *App) restore(ctx context.Context, fingerprint string) (*registry.Registry, bool) {
	logger := ctxlog.FromContext(ctx)

	snapshot, err := a.store.Load(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, contenterr.ErrMappingUnavailable) {
			logger.Info("Mapping: unavailable, rebuilding from scratch.", "fingerprint", fingerprint, "reason", err)
		} else {
			logger.Warn("Mapping: load failed, rebuilding from scratch.", "error", err)
		}
		return nil, false
	}

	reg, err := registry.FromSnapshot(snapshot)
	if err != nil {
		logger.Info("Mapping: stored snapshot is invalid, rebuilding from scratch.", "error", err)
		return nil, false
	}
	logger.Info("Mapping: registry restored.", "fingerprint", fingerprint)
	return reg, true
}
