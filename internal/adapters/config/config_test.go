package config

import (
	"context"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	require.NoError(t, v.Unmarshal(cfg))

	assert.Equal(t, "https://licences-api.onrender.com/api", cfg.API.BaseURL)
	assert.Equal(t, 90, cfg.API.TimeoutSeconds, "timeout must tolerate backend cold starts")
	assert.Equal(t, "fr", cfg.API.Locale)
	assert.True(t, cfg.API.WarmUp)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 300, cfg.Cache.DefaultTTLSeconds)
	assert.Equal(t, 300, cfg.Cache.CategoryListTTLSeconds)
	assert.Equal(t, 600, cfg.Cache.ProductListTTLSeconds)
	assert.Equal(t, 1800, cfg.Cache.ProductTTLSeconds)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
	assert.Equal(t, 600, cfg.Cache.SweepIntervalSeconds)

	assert.Equal(t, "file", cfg.Tokens.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "licences-storefront", cfg.App.ServiceName)
	assert.Zero(t, cfg.App.MetricsPort, "metrics listener stays off unless configured")
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("LICENCES_SF_API_BASE_URL", "http://localhost:3000/api")
	t.Setenv("LICENCES_SF_CACHE_BACKEND", "redis")
	t.Setenv("STOREFRONT_CONFIG_PATH", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	provider, err := NewViperProvider(ctx, zap.NewNop())
	require.NoError(t, err)

	cfg := provider.Get()
	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 90, cfg.API.TimeoutSeconds, "untouched keys keep their defaults")
}

// Exercises Get racing against reload writes; meaningful under -race.
func TestConcurrentGetAndReload(t *testing.T) {
	p := &viperProvider{config: &Config{}, logger: zap.NewNop()}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NotNil(t, p.Get())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.setConfig(&Config{API: APIConfig{TimeoutSeconds: j}})
			}
		}()
	}
	wg.Wait()
}

func TestStaticProviderReturnsWrappedConfig(t *testing.T) {
	cfg := &Config{API: APIConfig{BaseURL: "http://example.test"}}
	provider := &StaticProvider{Config: cfg}
	assert.Same(t, cfg, provider.Get())
}
