package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogConfig holds tunables for catalog reads that operators adjust
// without a redeploy.
type CatalogConfig struct {
	PopularDefaultLimit int `mapstructure:"popularDefaultLimit"`
	PopularMaxLimit     int `mapstructure:"popularMaxLimit"`
	LowStockThreshold   int `mapstructure:"lowStockThreshold"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		PopularDefaultLimit: 5,
		PopularMaxLimit:     50,
		LowStockThreshold:   10,
	}
}

type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/storefront/config") // Volume-mounted config
	v.AddConfigPath("/etc/storefront")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCatalogConfig()
		v.SetDefault("catalog.popularDefaultLimit", defaults.PopularDefaultLimit)
		v.SetDefault("catalog.popularMaxLimit", defaults.PopularMaxLimit)
		v.SetDefault("catalog.lowStockThreshold", defaults.LowStockThreshold)
	}

	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogConfig
		if err := v.UnmarshalKey("catalog", &updated); err != nil {
			log.Printf("[catalog-config] reload failed: %v", err)
			return
		}
		if err := validateCatalogConfig(updated); err != nil {
			log.Printf("[catalog-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[catalog-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	if v := h.current.Load(); v != nil {
		return v.(CatalogConfig)
	}
	return DefaultCatalogConfig()
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if cfg.PopularDefaultLimit <= 0 {
		return errors.New("catalog.popularDefaultLimit must be positive")
	}
	if cfg.PopularMaxLimit < cfg.PopularDefaultLimit {
		return errors.New("catalog.popularMaxLimit cannot be below popularDefaultLimit")
	}
	return nil
}
