package observability

import (
	"strings"

	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/spf13/viper"
)

// Config is the observability view of the process environment.
type Config struct {
	Service ServiceInfo
	Log     LogSettings
	Export  ExportSettings
}

type ServiceInfo struct {
	Name        string
	Environment string
	Version     string
}

type LogSettings struct {
	Level  string
	Format string
}

// ExportSettings configures the OTLP trace and metric exporters.
type ExportSettings struct {
	Enabled       bool
	Endpoint      string
	Protocol      string
	SamplingRatio float64
}

// LoadConfig overlays the OTEL_*, LOG_* and DEPLOYMENT_ENV variables on the
// application config.
func LoadConfig(cfg config.Config) Config {
	v := viper.New()
	v.AutomaticEnv()

	name := strings.TrimSpace(cfg.AppName)
	if name == "" {
		name = "bizpulse"
	}
	v.SetDefault("deployment_env", cfg.Environment)
	v.SetDefault("service_version", cfg.AppVersion)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("otel_enabled", true)
	v.SetDefault("otel_exporter_otlp_endpoint", cfg.OTLPEndpoint)
	v.SetDefault("otel_exporter_otlp_protocol", "grpc")
	v.SetDefault("otel_sampling_ratio", 0.1)

	protocol := v.GetString("otel_exporter_otlp_protocol")
	if traces := strings.TrimSpace(v.GetString("otel_exporter_otlp_traces_protocol")); traces != "" {
		protocol = traces
	}

	return Config{
		Service: ServiceInfo{
			Name:        name,
			Environment: strings.TrimSpace(v.GetString("deployment_env")),
			Version:     strings.TrimSpace(v.GetString("service_version")),
		},
		Log: LogSettings{
			Level:  normalize(v.GetString("log_level")),
			Format: normalize(v.GetString("log_format")),
		},
		Export: ExportSettings{
			Enabled:       v.GetBool("otel_enabled"),
			Endpoint:      strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint")),
			Protocol:      normalize(protocol),
			SamplingRatio: v.GetFloat64("otel_sampling_ratio"),
		},
	}
}

// Debug is true at debug level or in a development environment.
func (c Config) Debug() bool {
	if c.Log.Level == "debug" {
		return true
	}
	switch normalize(c.Service.Environment) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
