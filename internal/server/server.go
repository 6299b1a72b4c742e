package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/bizpulse/internal/care"
	caredomain "github.com/smallbiznis/bizpulse/internal/care/domain"
	"github.com/smallbiznis/bizpulse/internal/clock"
	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/smallbiznis/bizpulse/internal/crm"
	crmdomain "github.com/smallbiznis/bizpulse/internal/crm/domain"
	"github.com/smallbiznis/bizpulse/internal/erp"
	erpdomain "github.com/smallbiznis/bizpulse/internal/erp/domain"
	"github.com/smallbiznis/bizpulse/internal/logistics"
	logisticsdomain "github.com/smallbiznis/bizpulse/internal/logistics/domain"
	"github.com/smallbiznis/bizpulse/internal/observability"
	obsmiddleware "github.com/smallbiznis/bizpulse/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/bizpulse/internal/observability/metrics"
	obstracing "github.com/smallbiznis/bizpulse/internal/observability/tracing"
	"github.com/smallbiznis/bizpulse/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	ratelimit.Module,
	erp.Module,
	logistics.Module,
	care.Module,
	crm.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type EngineParams struct {
	fx.In

	Config      config.Config
	ObsConfig   observability.Config
	HTTPMetrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewEngine(p EngineParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(p.Config))
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           p.ObsConfig.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.GinMiddleware())
	}
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	corsConfig.AddAllowHeaders("X-Request-Id")
	corsConfig.AddExposeHeaders("X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After")
	return cors.New(corsConfig)
}

func registerGin(p EngineParams) *gin.Engine {
	return NewEngine(p)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type rateLimiter interface {
	Enabled() bool
	Allow(ctx context.Context, client, endpoint string) (ratelimit.Result, error)
}

type Server struct {
	engine       *gin.Engine
	clock        clock.Clock
	limiter      rateLimiter
	erpSvc       erpdomain.Service
	logisticsSvc logisticsdomain.Service
	careSvc      caredomain.Service
	crmSvc       crmdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Clock        clock.Clock
	Limiter      *ratelimit.Limiter `optional:"true"`
	ERPSvc       erpdomain.Service
	LogisticsSvc logisticsdomain.Service
	CareSvc      caredomain.Service
	CRMSvc       crmdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		clock:        p.Clock,
		erpSvc:       p.ERPSvc,
		logisticsSvc: p.LogisticsSvc,
		careSvc:      p.CareSvc,
		crmSvc:       p.CRMSvc,
	}
	if p.Limiter != nil {
		svc.limiter = p.Limiter
	}
	if svc.clock == nil {
		svc.clock = clock.NewSystemClock()
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.RateLimit())

	erpGroup := api.Group("/erp")
	{
		erpGroup.GET("/sales/total", s.GetSalesTotal)
		erpGroup.GET("/sales/by-category", s.GetSalesByCategory)
		erpGroup.GET("/sales/overdue", s.GetOverdueAmount)
		erpGroup.GET("/inventory/hot-selling", s.GetHotSellingItems)
		erpGroup.GET("/inventory/low-stock", s.GetLowStockItems)
	}

	logisticsGroup := api.Group("/logistics")
	{
		logisticsGroup.GET("/shipments/summary", s.GetShipmentSummary)
		logisticsGroup.GET("/deliveries/summary", s.GetDeliverySummary)
		logisticsGroup.GET("/deliveries/list", s.ListDeliveries)
	}

	careGroup := api.Group("/care")
	{
		careGroup.GET("/tickets/total", s.GetTotalTickets)
		careGroup.GET("/tickets/by-category", s.GetTicketsByCategory)
		careGroup.GET("/tickets/trends", s.GetTicketTrends)
	}

	crmGroup := api.Group("/crm")
	{
		crmGroup.GET("/leads/reporting", s.GetLeadReporting)
		crmGroup.GET("/leads/by-status", s.GetLeadsByStatus)
		crmGroup.GET("/customers/list", s.ListCustomers)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
