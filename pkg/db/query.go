package db

import (
	"context"
	"time"

	obscontext "github.com/smallbiznis/bizpulse/internal/observability/context"
	obslogger "github.com/smallbiznis/bizpulse/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/bizpulse/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Executor bounds every store call with a timeout and retries a transient
// failure exactly once.
type Executor struct {
	timeout time.Duration
	retry   bool
	log     *zap.Logger
	metrics *obsmetrics.Metrics
}

type ExecutorParams struct {
	fx.In

	Config  Config
	Log     *zap.Logger
	Metrics *obsmetrics.Metrics `optional:"true"`
}

func NewExecutor(p ExecutorParams) *Executor {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		timeout: p.Config.QueryTimeout,
		retry:   p.Config.QueryRetry,
		log:     log.Named("db.executor"),
		metrics: p.Metrics,
	}
}

// Run executes fn, naming it op in logs and metrics. A nil Executor runs fn as is.
func (e *Executor) Run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if e == nil {
		return fn(ctx)
	}

	ctx = obscontext.WithOperation(ctx, op)
	err := e.attempt(ctx, fn)
	if err == nil || !e.retry || !IsTransient(err) || ctx.Err() != nil {
		return err
	}

	obslogger.WithContext(ctx, e.log).Warn("retrying store query after transient failure", zap.Error(err))
	e.metrics.RecordStoreRetry(ctx, op)
	return e.attempt(ctx, fn)
}

func (e *Executor) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	if e.timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return fn(ctx)
}
