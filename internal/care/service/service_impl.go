package service

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/care/domain"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	obsmetrics "github.com/smallbiznis/bizpulse/internal/observability/metrics"
	"github.com/smallbiznis/bizpulse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	opTotalTickets      = "care.total_tickets"
	opTicketsByCategory = "care.tickets_by_category"
	opTicketTrends      = "care.ticket_trends"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	Executor *db.Executor
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	exec    *db.Executor
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("care.service"),
		repo:    p.Repo,
		exec:    p.Executor,
		metrics: p.Metrics,
	}
}

func (s *Service) TotalTickets(ctx context.Context, r daterange.Range) (domain.TicketTotal, error) {
	var total int64
	err := s.exec.Run(ctx, opTotalTickets, func(ctx context.Context) error {
		var err error
		total, err = s.repo.CountTickets(ctx, s.db, r)
		return err
	})
	s.metrics.RecordAggregation(ctx, opTotalTickets, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to count tickets", zap.String("range", r.String()), zap.Error(err))
		return domain.TicketTotal{}, err
	}
	return domain.TicketTotal{Total: total}, nil
}

func (s *Service) TicketsByCategory(ctx context.Context, r daterange.Range) ([]domain.TicketCategory, error) {
	rows, err := s.listTickets(ctx, opTicketsByCategory, r)
	if err != nil {
		return nil, err
	}
	return CountByCategory(rows, r), nil
}

func (s *Service) TicketTrends(ctx context.Context, r daterange.Range) ([]domain.TicketTrend, error) {
	rows, err := s.listTickets(ctx, opTicketTrends, r)
	if err != nil {
		return nil, err
	}
	return Trends(rows, r), nil
}

func (s *Service) listTickets(ctx context.Context, op string, r daterange.Range) ([]domain.ServiceTicket, error) {
	var rows []domain.ServiceTicket
	err := s.exec.Run(ctx, op, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.ListTickets(ctx, s.db, r)
		return err
	})
	s.metrics.RecordAggregation(ctx, op, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to list tickets",
			zap.String("operation", op),
			zap.String("range", r.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return rows, nil
}
