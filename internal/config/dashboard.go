package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DashboardConfig holds tunables that shape aggregation output.
type DashboardConfig struct {
	Currency           string `validate:"required,len=3,uppercase"`
	HotSellingLimit    int    `validate:"gte=1"`
	HotSellingMaxLimit int    `validate:"gte=1,gtefield=HotSellingLimit"`
	UncategorizedLabel string `validate:"required"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Currency:           "INR",
		HotSellingLimit:    10,
		HotSellingMaxLimit: 100,
		UncategorizedLabel: "Uncategorized",
	}
}

// DashboardConfigHolder serves the current dashboard config and swaps it on reload.
type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

// NewStaticDashboardConfigHolder returns a holder that never reloads.
func NewStaticDashboardConfigHolder(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDashboardConfigHolder(cfg Config, log *zap.Logger) (*DashboardConfigHolder, error) {
	v := viper.New()

	if cfg.DashboardConfigPath != "" {
		v.SetConfigFile(cfg.DashboardConfigPath)
	} else {
		v.SetConfigName("dashboard")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/bizpulse")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BIZPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.currency", defaults.Currency)
	v.SetDefault("dashboard.hotSellingLimit", defaults.HotSellingLimit)
	v.SetDefault("dashboard.hotSellingMaxLimit", defaults.HotSellingMaxLimit)
	v.SetDefault("dashboard.uncategorizedLabel", defaults.UncategorizedLabel)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfg.DashboardConfigPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read dashboard config: %w", err)
		}
		// no file: run on defaults, nothing to watch
		fileLoaded = false
	}

	current, err := decodeDashboardConfig(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticDashboardConfigHolder(current)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeDashboardConfig(v)
		if err != nil {
			log.Warn("dashboard config reload ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("dashboard config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *DashboardConfigHolder) Get() DashboardConfig {
	if h == nil {
		return DefaultDashboardConfig()
	}
	cfg, ok := h.current.Load().(DashboardConfig)
	if !ok {
		return DefaultDashboardConfig()
	}
	return cfg
}

var dashboardValidator = validator.New()

func decodeDashboardConfig(v *viper.Viper) (DashboardConfig, error) {
	cfg := DashboardConfig{
		Currency:           strings.ToUpper(strings.TrimSpace(v.GetString("dashboard.currency"))),
		HotSellingLimit:    v.GetInt("dashboard.hotSellingLimit"),
		HotSellingMaxLimit: v.GetInt("dashboard.hotSellingMaxLimit"),
		UncategorizedLabel: strings.TrimSpace(v.GetString("dashboard.uncategorizedLabel")),
	}
	if err := ValidateDashboardConfig(cfg); err != nil {
		return DashboardConfig{}, err
	}
	return cfg, nil
}

func ValidateDashboardConfig(cfg DashboardConfig) error {
	if err := dashboardValidator.Struct(cfg); err != nil {
		return fmt.Errorf("invalid dashboard config: %w", err)
	}
	return nil
}
