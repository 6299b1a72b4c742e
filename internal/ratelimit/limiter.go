package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/smallbiznis/bizpulse/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyClient = "bizpulse:ratelimit:client:%s"

// ErrRateLimited is returned when a client exhausted its request budget.
var ErrRateLimited = errors.New("rate_limited")

type bucket interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (Result, error)
}

// Limiter throttles dashboard reads per client address. A nil or disabled
// Limiter admits everything.
type Limiter struct {
	bucket  bucket
	rate    float64
	burst   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

// NewLimiter connects to Redis when REDIS_ADDR is set; otherwise limiting is off.
func NewLimiter(p Params) (*Limiter, error) {
	addr := strings.TrimSpace(p.Config.RedisAddr)
	if addr == "" {
		p.Log.Info("rate limiting disabled, no redis address configured")
		return nil, nil
	}
	if p.Config.RateLimitRPS <= 0 || p.Config.RateLimitBurst <= 0 {
		return nil, errors.New("rate limit rps and burst must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(p.Config.RedisPassword),
	})
	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}

	return newLimiter(NewTokenBucket(client), p.Config.RateLimitRPS, p.Config.RateLimitBurst, p.Log, p.Metrics), nil
}

func newLimiter(b bucket, rate float64, burst int, log *zap.Logger, m *metrics.Metrics) *Limiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Limiter{
		bucket:  b,
		rate:    rate,
		burst:   burst,
		log:     log.Named("ratelimit"),
		metrics: m,
	}
}

func (l *Limiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow reports whether client may issue another request against endpoint.
// Redis failures admit the request.
func (l *Limiter) Allow(ctx context.Context, client, endpoint string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}

	res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyClient, strings.TrimSpace(client)), l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limiter unavailable, admitting request", zap.Error(err))
		l.metrics.RecordRateLimitAllowed(ctx, endpoint)
		return Result{Allowed: true}, nil
	}
	if !res.Allowed {
		l.metrics.RecordRateLimitDenied(ctx, endpoint, "exhausted")
		return res, ErrRateLimited
	}
	l.metrics.RecordRateLimitAllowed(ctx, endpoint)
	return res, nil
}
