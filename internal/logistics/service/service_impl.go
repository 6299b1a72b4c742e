package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/bizpulse/internal/daterange"
	"github.com/smallbiznis/bizpulse/internal/logistics/domain"
	obsmetrics "github.com/smallbiznis/bizpulse/internal/observability/metrics"
	"github.com/smallbiznis/bizpulse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	opShipmentSummary = "logistics.shipment_summary"
	opDeliverySummary = "logistics.delivery_summary"
	opDeliveryList    = "logistics.delivery_list"
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
		log:     p.Log.Named("logistics.service"),
		repo:    p.Repo,
		exec:    p.Executor,
		metrics: p.Metrics,
	}
}

func (s *Service) ShipmentSummary(ctx context.Context, r daterange.Range) (domain.ShipmentSummary, error) {
	var summary domain.ShipmentSummary

	counts := []struct {
		dst    *int64
		filter domain.ShipmentFilter
	}{
		{&summary.Due, domain.ShipmentFilter{
			ShipmentType: domain.ShipmentTypeRegular,
			Status:       domain.ShipmentStatusPending,
			DateColumn:   "created_at",
			Range:        r,
		}},
		{&summary.Received, domain.ShipmentFilter{
			ShipmentType: domain.ShipmentTypeRegular,
			Status:       domain.ShipmentStatusReceived,
			DateColumn:   "received_date",
			Range:        r,
		}},
		{&summary.Spare, domain.ShipmentFilter{
			ShipmentType: domain.ShipmentTypeSpare,
			Status:       domain.ShipmentStatusReceived,
			DateColumn:   "received_date",
			Range:        r,
		}},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		c := c
		g.Go(func() error {
			return s.exec.Run(gctx, opShipmentSummary, func(ctx context.Context) error {
				n, err := s.repo.CountShipments(ctx, s.db, c.filter)
				if err != nil {
					return err
				}
				*c.dst = n
				return nil
			})
		})
	}

	err := g.Wait()
	s.metrics.RecordAggregation(ctx, opShipmentSummary, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to count shipments", zap.String("range", r.String()), zap.Error(err))
		return domain.ShipmentSummary{}, err
	}
	return summary, nil
}

func (s *Service) DeliverySummary(ctx context.Context, r daterange.Range) (domain.DeliverySummary, error) {
	rows, err := s.listDeliveries(ctx, opDeliverySummary, domain.DeliveryFilter{Range: r})
	if err != nil {
		return domain.DeliverySummary{}, err
	}

	summary, unknown := SummarizeDeliveries(rows, r)
	if unknown > 0 {
		s.log.Debug("deliveries with unknown type skipped", zap.Int("unknown_types", unknown))
	}
	return summary, nil
}

func (s *Service) DeliveryList(ctx context.Context, r daterange.Range, deliveryType string) ([]domain.Delivery, error) {
	deliveryType = strings.TrimSpace(deliveryType)
	if deliveryType != "" && !domain.IsDeliveryType(deliveryType) {
		return nil, domain.ErrInvalidDeliveryType
	}

	rows, err := s.listDeliveries(ctx, opDeliveryList, domain.DeliveryFilter{
		DeliveryType: deliveryType,
		Range:        r,
	})
	if err != nil {
		return nil, err
	}
	return FilterDeliveries(rows, r, deliveryType), nil
}

func (s *Service) listDeliveries(ctx context.Context, op string, filter domain.DeliveryFilter) ([]domain.Delivery, error) {
	var rows []domain.Delivery
	err := s.exec.Run(ctx, op, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.ListDeliveries(ctx, s.db, filter)
		return err
	})
	s.metrics.RecordAggregation(ctx, op, obsmetrics.Outcome(err))
	if err != nil {
		s.log.Error("failed to list deliveries",
			zap.String("operation", op),
			zap.String("range", filter.Range.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return rows, nil
}
