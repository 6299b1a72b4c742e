package observability

import (
	"testing"

	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaultsFromAppConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:      "bizpulse",
		AppVersion:   "1.2.3",
		Environment:  "production",
		OTLPEndpoint: "collector:4317",
	})

	assert.Equal(t, "bizpulse", cfg.Service.Name)
	assert.Equal(t, "production", cfg.Service.Environment)
	assert.Equal(t, "1.2.3", cfg.Service.Version)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "collector:4317", cfg.Export.Endpoint)
	assert.Equal(t, "grpc", cfg.Export.Protocol)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "HTTP/protobuf")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.5")

	cfg := LoadConfig(config.Config{Environment: "production"})

	assert.Equal(t, "bizpulse", cfg.Service.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Export.Enabled)
	assert.Equal(t, "http/protobuf", cfg.Export.Protocol)
	assert.Equal(t, 0.5, cfg.Export.SamplingRatio)
	assert.True(t, cfg.Debug())
}
