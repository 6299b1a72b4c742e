package service

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	"github.com/smallbiznis/bizpulse/internal/erp/domain"
	obsmetrics "github.com/smallbiznis/bizpulse/internal/observability/metrics"
	"github.com/smallbiznis/bizpulse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	opSalesTotal      = "erp.sales_total"
	opSalesByCategory = "erp.sales_by_category"
	opOverdueAmount   = "erp.overdue_amount"
	opHotSelling      = "erp.hot_selling"
	opLowStock        = "erp.low_stock"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Repo      domain.Repository
	Executor  *db.Executor
	Dashboard *config.DashboardConfigHolder
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	exec      *db.Executor
	dashboard *config.DashboardConfigHolder
	metrics   *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("erp.service"),
		repo:      p.Repo,
		exec:      p.Executor,
		dashboard: p.Dashboard,
		metrics:   p.Metrics,
	}
}

func (s *Service) SalesTotal(ctx context.Context, r daterange.Range) (domain.SalesTotal, error) {
	rows, err := s.listSales(ctx, opSalesTotal, domain.SalesFilter{Range: r})
	if err != nil {
		return domain.SalesTotal{}, err
	}
	return TotalSales(rows, r, s.dashboard.Get().Currency), nil
}

func (s *Service) SalesByCategory(ctx context.Context, r daterange.Range) ([]domain.CategorySales, error) {
	rows, err := s.listSales(ctx, opSalesByCategory, domain.SalesFilter{Range: r})
	if err != nil {
		return nil, err
	}
	return SalesByCategory(rows, r, s.dashboard.Get().UncategorizedLabel), nil
}

func (s *Service) OverdueAmount(ctx context.Context, r daterange.Range) (domain.Overdue, error) {
	rows, err := s.listSales(ctx, opOverdueAmount, domain.SalesFilter{
		Range:         r,
		PaymentStatus: domain.PaymentStatusOverdue,
	})
	if err != nil {
		return domain.Overdue{}, err
	}
	return OverdueAmount(rows, r, s.dashboard.Get().Currency), nil
}

func (s *Service) HotSelling(ctx context.Context, limit int) ([]domain.InventoryItem, error) {
	cfg := s.dashboard.Get()
	if limit == 0 {
		limit = cfg.HotSellingLimit
	}
	if limit < 1 || limit > cfg.HotSellingMaxLimit {
		return nil, domain.ErrInvalidLimit
	}

	var items []domain.InventoryItem
	err := s.exec.Run(ctx, opHotSelling, func(ctx context.Context) error {
		var err error
		items, err = s.repo.ListTopSelling(ctx, s.db, limit)
		return err
	})
	s.metrics.RecordAggregation(ctx, opHotSelling, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to list hot selling items", zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	return TopSelling(items, limit), nil
}

func (s *Service) LowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := s.exec.Run(ctx, opLowStock, func(ctx context.Context) error {
		var err error
		items, err = s.repo.ListInventory(ctx, s.db)
		return err
	})
	s.metrics.RecordAggregation(ctx, opLowStock, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to list inventory", zap.Error(err))
		return nil, err
	}
	return LowStock(items), nil
}

func (s *Service) listSales(ctx context.Context, op string, filter domain.SalesFilter) ([]domain.SalesTransaction, error) {
	var rows []domain.SalesTransaction
	err := s.exec.Run(ctx, op, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.ListSales(ctx, s.db, filter)
		return err
	})
	s.metrics.RecordAggregation(ctx, op, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to list sales transactions",
			zap.String("operation", op),
			zap.String("range", filter.Range.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return rows, nil
}
