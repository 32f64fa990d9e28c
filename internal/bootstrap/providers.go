package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/cache"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/config"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/logger"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/rest"
	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/tokenstore"
	"gitlab.com/nubelio/licences/storefront-client/internal/application"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// InitialZapLoggerProvider provides a basic *zap.Logger instance, primarily for config initialization.
// It returns the logger, a cleanup function (for syncing), and an error if creation fails.
func InitialZapLoggerProvider() (*zap.Logger, func(), error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		zapLogger, err = zap.NewDevelopment()
		if err != nil {
			zapLogger = zap.NewExample()
			fmt.Fprintf(os.Stderr, "Failed to create initial zap logger (production and development failed, falling back to example): %v\n", err)
		}
	}

	cleanup := func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to sync initial zap logger: %v\n", syncErr)
		}
	}
	return zapLogger, cleanup, nil
}

// App aggregates everything the command layer needs: the configured
// services plus the raw REST modules for the admin operations that
// bypass caching.
type App struct {
	configProvider config.Provider
	logger         domain.Logger
	cache          domain.Cache
	auth           *application.AuthService
	cart           *application.CartService
	catalog        *application.CatalogService
	orders         *application.OrderService
	warmup         *application.Warmup
	categoriesAPI  *rest.CategoriesAPI
	productsAPI    *rest.ProductsAPI
	healthAPI      *rest.HealthAPI
}

// NewApp is the constructor for App, also for Wire.
func NewApp(
	cfgProvider config.Provider,
	appLogger domain.Logger,
	responseCache domain.Cache,
	authService *application.AuthService,
	cartService *application.CartService,
	catalogService *application.CatalogService,
	orderService *application.OrderService,
	warmup *application.Warmup,
	categoriesAPI *rest.CategoriesAPI,
	productsAPI *rest.ProductsAPI,
	healthAPI *rest.HealthAPI,
) (*App, func(), error) {
	app := &App{
		configProvider: cfgProvider,
		logger:         appLogger,
		cache:          responseCache,
		auth:           authService,
		cart:           cartService,
		catalog:        catalogService,
		orders:         orderService,
		warmup:         warmup,
		categoriesAPI:  categoriesAPI,
		productsAPI:    productsAPI,
		healthAPI:      healthAPI,
	}

	cleanup := func() {
		app.logger.Info(context.Background(), "Running app cleanup...")
	}
	return app, cleanup, nil
}

// ConfigProvider provides the application configuration.
// It accepts appCtx to be passed to NewViperProvider for graceful goroutine shutdown.
func ConfigProvider(appCtx context.Context, zapLogger *zap.Logger) (config.Provider, error) {
	return config.NewViperProvider(appCtx, zapLogger)
}

// LoggerProvider provides the application logger.
func LoggerProvider(cfgProvider config.Provider) (domain.Logger, error) {
	appCfg := cfgProvider.Get()
	return logger.NewZapAdapter(cfgProvider, appCfg.App.ServiceName)
}

// RedisClientProvider provides a Redis client and a cleanup function.
// The client dials lazily, so it only costs anything when a redis
// backend is actually selected in configuration.
func RedisClientProvider(cfgProvider config.Provider, appLogger domain.Logger) (*redis.Client, func()) {
	appCfg := cfgProvider.Get()
	client := redis.NewClient(&redis.Options{
		Addr:     appCfg.Redis.Address,
		Password: appCfg.Redis.Password,
		DB:       appCfg.Redis.DB,
	})
	cleanup := func() {
		if err := client.Close(); err != nil {
			appLogger.Warn(context.Background(), "Failed to close Redis client", "error", err.Error())
		}
	}
	return client, cleanup
}

// TokenStoreProvider selects the token persistence backend.
func TokenStoreProvider(appCtx context.Context, cfgProvider config.Provider, redisClient *redis.Client, appLogger domain.Logger) (domain.TokenStore, error) {
	appCfg := cfgProvider.Get()
	switch appCfg.Tokens.Backend {
	case "memory":
		return tokenstore.NewMemoryStore(), nil
	case "redis":
		return tokenstore.NewRedisStore(appCtx, redisClient, "default", appLogger), nil
	case "", "file":
		return tokenstore.NewFileStore(appCfg.Tokens.FilePath, appLogger)
	default:
		return nil, fmt.Errorf("unknown token store backend '%s'", appCfg.Tokens.Backend)
	}
}

// CacheProvider selects the response cache backend.
func CacheProvider(cfgProvider config.Provider, redisClient *redis.Client, appLogger domain.Logger) (domain.Cache, error) {
	appCfg := cfgProvider.Get()
	defaultTTL := time.Duration(appCfg.Cache.DefaultTTLSeconds) * time.Second
	switch appCfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(redisClient, defaultTTL, appLogger), nil
	case "", "memory":
		return cache.NewMemoryCache(defaultTTL, appCfg.Cache.MaxEntries, appLogger), nil
	default:
		return nil, fmt.Errorf("unknown cache backend '%s'", appCfg.Cache.Backend)
	}
}

// RestClientProvider provides the shared HTTP client.
func RestClientProvider(cfgProvider config.Provider, tokens domain.TokenStore, appLogger domain.Logger) (*rest.Client, error) {
	return rest.NewClient(cfgProvider, tokens, appLogger)
}

// AuthAPIProvider provides the auth route wrapper.
func AuthAPIProvider(client *rest.Client, tokens domain.TokenStore, appLogger domain.Logger) *rest.AuthAPI {
	return rest.NewAuthAPI(client, tokens, appLogger)
}

// CategoriesAPIProvider provides the categories route wrapper.
func CategoriesAPIProvider(client *rest.Client) *rest.CategoriesAPI {
	return rest.NewCategoriesAPI(client)
}

// ProductsAPIProvider provides the products route wrapper.
func ProductsAPIProvider(client *rest.Client) *rest.ProductsAPI {
	return rest.NewProductsAPI(client)
}

// CartAPIProvider provides the cart route wrapper.
func CartAPIProvider(client *rest.Client) *rest.CartAPI {
	return rest.NewCartAPI(client)
}

// OrdersAPIProvider provides the orders route wrapper.
func OrdersAPIProvider(client *rest.Client) *rest.OrdersAPI {
	return rest.NewOrdersAPI(client)
}

// HealthAPIProvider provides the health route wrapper.
func HealthAPIProvider(client *rest.Client) *rest.HealthAPI {
	return rest.NewHealthAPI(client)
}

// AuthServiceProvider provides the session container.
func AuthServiceProvider(authAPI *rest.AuthAPI, tokens domain.TokenStore, appLogger domain.Logger) *application.AuthService {
	return application.NewAuthService(authAPI, tokens, appLogger)
}

// CartServiceProvider provides the cart mirror.
func CartServiceProvider(cartAPI *rest.CartAPI, appLogger domain.Logger) *application.CartService {
	return application.NewCartService(cartAPI, appLogger)
}

// CatalogServiceProvider provides the cached catalog reader.
func CatalogServiceProvider(categoriesAPI *rest.CategoriesAPI, productsAPI *rest.ProductsAPI, responseCache domain.Cache, cfgProvider config.Provider, appLogger domain.Logger) *application.CatalogService {
	return application.NewCatalogService(categoriesAPI, productsAPI, responseCache, cfgProvider, appLogger)
}

// OrderServiceProvider provides the order service.
func OrderServiceProvider(ordersAPI *rest.OrdersAPI, cartService *application.CartService, appLogger domain.Logger) *application.OrderService {
	return application.NewOrderService(ordersAPI, cartService, appLogger)
}

// WarmupProvider provides the cold-start pre-warm pinger.
func WarmupProvider(healthAPI *rest.HealthAPI, cfgProvider config.Provider, appLogger domain.Logger) *application.Warmup {
	return application.NewWarmup(healthAPI, cfgProvider, appLogger)
}

// ProviderSet is the Wire provider set for the entire application.
var ProviderSet = wire.NewSet(
	InitialZapLoggerProvider,
	ConfigProvider,
	LoggerProvider,

	// Infrastructure adapters
	RedisClientProvider,
	TokenStoreProvider,
	CacheProvider,

	// REST boundary
	RestClientProvider,
	AuthAPIProvider,
	CategoriesAPIProvider,
	ProductsAPIProvider,
	CartAPIProvider,
	OrdersAPIProvider,
	HealthAPIProvider,

	// Application services
	AuthServiceProvider,
	CartServiceProvider,
	CatalogServiceProvider,
	OrderServiceProvider,
	WarmupProvider,

	NewApp,
)
