package observability

import (
	"github.com/smallbiznis/bizpulse/internal/observability/logger"
	"github.com/smallbiznis/bizpulse/internal/observability/metrics"
	"github.com/smallbiznis/bizpulse/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(LoadConfig),
	fx.Provide(
		func(cfg Config) logger.Config {
			return logger.Config{
				ServiceName:         cfg.Service.Name,
				Environment:         cfg.Service.Environment,
				Version:             cfg.Service.Version,
				Level:               cfg.Log.Level,
				Format:              cfg.Log.Format,
				Debug:               cfg.Debug(),
				IncludeCaller:       true,
				IncludeStackOnError: cfg.Debug(),
			}
		},
		logger.New,
	),
	fx.Provide(
		func(cfg Config) tracing.Config {
			return tracing.Config{
				Enabled:          cfg.Export.Enabled,
				ServiceName:      cfg.Service.Name,
				ServiceVersion:   cfg.Service.Version,
				Environment:      cfg.Service.Environment,
				ExporterEndpoint: cfg.Export.Endpoint,
				ExporterProtocol: cfg.Export.Protocol,
				SamplingRatio:    cfg.Export.SamplingRatio,
			}
		},
		tracing.NewProvider,
	),
	fx.Provide(
		func(cfg Config) metrics.Config {
			return metrics.Config{
				Enabled:          cfg.Export.Enabled,
				ExporterEndpoint: cfg.Export.Endpoint,
				ExporterProtocol: cfg.Export.Protocol,
				ServiceName:      cfg.Service.Name,
				Environment:      cfg.Service.Environment,
			}
		},
		metrics.NewProvider,
		metrics.New,
		metrics.NewHTTPMetrics,
	),
	// the tracer provider installs itself globally; force its construction
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)
