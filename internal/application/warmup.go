package application

import (
	"context"
	"time"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/config"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
	"gitlab.com/nubelio/licences/storefront-client/pkg/safego"
)

// HealthGateway is the slice of the REST boundary the warm-up consumes.
type HealthGateway interface {
	Check(ctx context.Context) (*domain.HealthResponse, error)
}

// Warmup pings the health endpoint once in the background at startup so
// a cold-started backend begins waking before the first real request.
// It never blocks and never fails the application; outcomes are only
// logged.
type Warmup struct {
	api    HealthGateway
	cfg    config.Provider
	logger domain.Logger
}

// NewWarmup creates the warm-up pinger.
func NewWarmup(api HealthGateway, cfg config.Provider, logger domain.Logger) *Warmup {
	if api == nil {
		panic("api cannot be nil in NewWarmup")
	}
	if cfg == nil {
		panic("cfg cannot be nil in NewWarmup")
	}
	if logger == nil {
		panic("logger cannot be nil in NewWarmup")
	}
	return &Warmup{api: api, cfg: cfg, logger: logger}
}

// Start fires the background ping if warm-up is enabled.
func (w *Warmup) Start(ctx context.Context) {
	if !w.cfg.Get().API.WarmUp {
		w.logger.Debug(ctx, "Warm-up disabled by configuration")
		return
	}
	safego.Execute(ctx, w.logger, "HealthWarmup", func() {
		start := time.Now()
		resp, err := w.api.Check(ctx)
		if err != nil {
			w.logger.Warn(ctx, "Warm-up health ping failed",
				"elapsed", time.Since(start).String(), "error", err.Error())
			return
		}
		w.logger.Info(ctx, "Backend awake",
			"status", resp.Status, "elapsed", time.Since(start).String())
	})
}
