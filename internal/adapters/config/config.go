package config

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "LICENCES_SF"

// APIConfig holds the remote licences API settings.
// Note: Fields should be exported (start with uppercase) to be unmarshalled by Viper.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // long timeout tolerates backend cold starts
	Locale         string `mapstructure:"locale"`          // sent as x-lang on every request
	WarmUp         bool   `mapstructure:"warm_up"`         // ping /health at startup
}

// CacheConfig holds TTL-cache settings. TTLs mirror the read policy:
// short for category lists, longer for product lists, longest for
// single-resource lookups.
type CacheConfig struct {
	Backend                string `mapstructure:"backend"` // "memory" or "redis"
	DefaultTTLSeconds      int    `mapstructure:"default_ttl_seconds"`
	CategoryListTTLSeconds int    `mapstructure:"category_list_ttl_seconds"`
	ProductListTTLSeconds  int    `mapstructure:"product_list_ttl_seconds"`
	ProductTTLSeconds      int    `mapstructure:"product_ttl_seconds"`
	MaxEntries             int    `mapstructure:"max_entries"` // LRU bound for the memory backend
	SweepIntervalSeconds   int    `mapstructure:"sweep_interval_seconds"`
}

// TokensConfig holds token persistence settings.
type TokensConfig struct {
	Backend  string `mapstructure:"backend"`   // "file", "memory" or "redis"
	FilePath string `mapstructure:"file_path"` // optional override for the file backend
}

// RedisConfig holds Redis-related configurations for the redis-backed
// token store and cache (shared-session deployments).
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"` // Optional
	DB       int    `mapstructure:"db"`       // Optional
}

// LogConfig holds logging-related configurations.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AppConfig holds application-specific configurations.
type AppConfig struct {
	ServiceName string `mapstructure:"service_name"`
	Version     string `mapstructure:"version"`
	MetricsPort int    `mapstructure:"metrics_port"` // 0 disables the /metrics listener
}

// Config holds all configuration for the application.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Tokens TokensConfig `mapstructure:"tokens"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`
	App    AppConfig    `mapstructure:"app"`
}

// Provider defines an interface for accessing application configuration.
// This allows for easy mocking in tests and decouples the app from Viper.
type Provider interface {
	Get() *Config
}

// viperProvider implements the Provider interface using Viper.
// Reloads happen on goroutines, so the current config is guarded.
type viperProvider struct {
	mu     sync.RWMutex
	config *Config
	logger *zap.Logger // zap directly here, not domain.Logger, to avoid circular deps
}

func (p *viperProvider) setConfig(cfg *Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config = cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://licences-api.onrender.com/api")
	v.SetDefault("api.timeout_seconds", 90)
	v.SetDefault("api.locale", "fr")
	v.SetDefault("api.warm_up", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.default_ttl_seconds", 300)
	v.SetDefault("cache.category_list_ttl_seconds", 300)
	v.SetDefault("cache.product_list_ttl_seconds", 600)
	v.SetDefault("cache.product_ttl_seconds", 1800)
	v.SetDefault("cache.max_entries", 1024)
	v.SetDefault("cache.sweep_interval_seconds", 600)
	v.SetDefault("tokens.backend", "file")
	v.SetDefault("log.level", "info")
	v.SetDefault("app.service_name", "licences-storefront")
}

// NewViperProvider creates and initializes a new configuration provider using Viper.
// It loads configuration from file and environment variables, and sets up hot-reloading
// via both SIGHUP and config file change events. appCtx is the application lifecycle
// context used for graceful shutdown of the reload goroutine.
func NewViperProvider(appCtx context.Context, logger *zap.Logger) (Provider, error) {
	cfg := &Config{}
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(getEnv("STOREFRONT_CONFIG_NAME", "storefront"))
	v.SetConfigType("yaml")
	if p := os.Getenv("STOREFRONT_CONFIG_PATH"); p != "" {
		v.AddConfigPath(p)
	}
	if home, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(home + "/licences-storefront")
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")) // e.g. api.base_url becomes LICENCES_SF_API_BASE_URL

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Warn("Config file not found; relying on defaults and environment variables", zap.Error(err))
		} else {
			logger.Error("Failed to read config file", zap.Error(err))
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		logger.Error("Failed to unmarshal config", zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	p := &viperProvider{
		config: cfg,
		logger: logger,
	}

	// SIGHUP triggers a full config reload.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("Panic recovered in SIGHUP handler goroutine",
					zap.String("goroutine_name", "SIGHUPConfigReloader"),
					zap.Any("panic_info", r),
					zap.String("stacktrace", string(debug.Stack())),
				)
			}
		}()
		for {
			select {
			case sig := <-sigChan:
				p.logger.Info("SIGHUP received, attempting to reload configuration...", zap.String("signal", sig.String()))
				if err := v.ReadInConfig(); err != nil {
					p.logger.Error("Failed to re-read config file on SIGHUP", zap.Error(err))
				} else {
					newCfg := &Config{}
					if err := v.Unmarshal(newCfg); err != nil {
						p.logger.Error("Failed to unmarshal re-read config on SIGHUP", zap.Error(err))
					} else {
						p.setConfig(newCfg)
						p.logger.Info("Configuration reloaded successfully via SIGHUP")
					}
				}
			case <-appCtx.Done():
				p.logger.Info("SIGHUPConfigReloader goroutine shutting down due to context cancellation.")
				return
			}
		}
	}()

	// Watch for config file changes for local development.
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("Panic recovered in OnConfigChange callback",
					zap.String("event_name", e.Name),
					zap.String("event_op", e.Op.String()),
					zap.Any("panic_info", r),
					zap.String("stacktrace", string(debug.Stack())),
				)
			}
		}()
		p.logger.Info("Config file changed", zap.String("name", e.Name), zap.String("op", e.Op.String()))
		newCfg := &Config{}
		if err := v.Unmarshal(newCfg); err != nil {
			p.logger.Error("Failed to unmarshal config on file change event", zap.Error(err))
		} else {
			p.setConfig(newCfg)
			p.logger.Info("Configuration reloaded successfully via file change event")
		}
	})

	p.logger.Info("Configuration loaded successfully", zap.String("config_file_used", v.ConfigFileUsed()))

	return p, nil
}

// Get returns the current configuration.
func (p *viperProvider) Get() *Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config
}

// StaticProvider wraps a fixed Config, for tests and embedded use.
type StaticProvider struct {
	Config *Config
}

// Get returns the wrapped configuration.
func (p *StaticProvider) Get() *Config {
	return p.Config
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
