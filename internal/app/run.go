package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/dump"
)

// Run loads the registry, optionally prints it, and serves it until ctx is
// cancelled when a healthcheck port is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.Load(ctx); err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	if a.config.Dump {
		if err := dump.Write(a.outW, a.Current(), a.LastReport()); err != nil {
			return fmt.Errorf("failed to write registry report: %w", err)
		}
	}

	if a.config.HealthcheckPort <= 0 {
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	if err := a.startServer(a.config.HealthcheckPort); err != nil {
		return err
	}
	<-ctx.Done()
	a.logger.Debug("Context cancelled, stopping.")
	return a.shutdownServer()
}
