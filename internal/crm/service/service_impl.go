package service

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/smallbiznis/bizpulse/internal/crm/domain"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	obsmetrics "github.com/smallbiznis/bizpulse/internal/observability/metrics"
	"github.com/smallbiznis/bizpulse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	opLeadReporting = "crm.lead_reporting"
	opCustomers     = "crm.customers"
	opLeadsByStatus = "crm.leads_by_status"
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
		log:       p.Log.Named("crm.service"),
		repo:      p.Repo,
		exec:      p.Executor,
		dashboard: p.Dashboard,
		metrics:   p.Metrics,
	}
}

func (s *Service) LeadReporting(ctx context.Context, r daterange.Range) (domain.LeadReporting, error) {
	rows, err := s.listLeads(ctx, opLeadReporting, r)
	if err != nil {
		return domain.LeadReporting{}, err
	}
	return Report(rows, r, s.dashboard.Get().Currency), nil
}

func (s *Service) Customers(ctx context.Context, r daterange.Range) ([]domain.Lead, error) {
	rows, err := s.listLeads(ctx, opCustomers, r)
	if err != nil {
		return nil, err
	}
	return FilterLeads(rows, r), nil
}

func (s *Service) LeadsByStatus(ctx context.Context, r daterange.Range) ([]domain.LeadStatusCount, error) {
	rows, err := s.listLeads(ctx, opLeadsByStatus, r)
	if err != nil {
		return nil, err
	}
	return CountByStatus(rows, r), nil
}

func (s *Service) listLeads(ctx context.Context, op string, r daterange.Range) ([]domain.Lead, error) {
	var rows []domain.Lead
	err := s.exec.Run(ctx, op, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.ListLeads(ctx, s.db, r)
		return err
	})
	s.metrics.RecordAggregation(ctx, op, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to list leads",
			zap.String("operation", op),
			zap.String("range", r.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return rows, nil
}
