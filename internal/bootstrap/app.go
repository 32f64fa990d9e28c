package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/cache"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/config"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/rest"
	"gitlab.com/nubelio/licences/storefront-client/internal/application"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
	"gitlab.com/nubelio/licences/storefront-client/pkg/safego"
)

// NOTE: The App struct and NewApp function are defined in providers.go for Wire.
// This file only contains methods on App.

// Start launches the background machinery: the cache sweeper, the
// cold-start warm-up ping, and the optional metrics listener. Commands
// then execute against the services. Everything started here stops
// when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	appCfg := a.configProvider.Get()
	a.logger.Info(ctx, "Starting application",
		"service_name", appCfg.App.ServiceName, "version", appCfg.App.Version)

	if mem, ok := a.cache.(*cache.MemoryCache); ok {
		interval := time.Duration(appCfg.Cache.SweepIntervalSeconds) * time.Second
		mem.StartSweeper(ctx, interval)
	}

	a.warmup.Start(ctx)

	if appCfg.App.MetricsPort > 0 {
		a.startMetricsListener(ctx, appCfg.App.MetricsPort)
	}
}

func (a *App) startMetricsListener(ctx context.Context, port int) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	safego.Execute(ctx, a.logger, "MetricsListener", func() {
		a.logger.Info(ctx, "Prometheus metrics listening", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(ctx, "Metrics listener failed", "error", err.Error())
		}
	})
	safego.Execute(ctx, a.logger, "MetricsListenerShutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn(context.Background(), "Metrics listener shutdown failed", "error", err.Error())
		}
	})
}

// Config returns the configuration provider.
func (a *App) Config() config.Provider { return a.configProvider }

// Logger returns the application logger.
func (a *App) Logger() domain.Logger { return a.logger }

// Auth returns the session container.
func (a *App) Auth() *application.AuthService { return a.auth }

// Cart returns the cart mirror.
func (a *App) Cart() *application.CartService { return a.cart }

// Catalog returns the cached catalog reader.
func (a *App) Catalog() *application.CatalogService { return a.catalog }

// Orders returns the order service.
func (a *App) Orders() *application.OrderService { return a.orders }

// Categories returns the raw categories REST module, for admin
// mutations that bypass the cache.
func (a *App) Categories() *rest.CategoriesAPI { return a.categoriesAPI }

// Products returns the raw products REST module.
func (a *App) Products() *rest.ProductsAPI { return a.productsAPI }

// Health returns the health probe.
func (a *App) Health() *rest.HealthAPI { return a.healthAPI }

// ResponseCache returns the response cache, so commands can invalidate
// it after admin mutations.
func (a *App) ResponseCache() domain.Cache { return a.cache }
