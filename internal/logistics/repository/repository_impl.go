package repository

import (
	"context"
	"fmt"

	"github.com/smallbiznis/bizpulse/internal/logistics/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountShipments(ctx context.Context, db *gorm.DB, filter domain.ShipmentFilter) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Shipment{}).
		Where("shipment_type = ?", filter.ShipmentType).
		Where("status = ?", filter.Status)

	switch filter.DateColumn {
	case "created_at", "received_date":
		stmt = filter.Range.Apply(stmt, filter.DateColumn)
	case "":
	default:
		return 0, fmt.Errorf("unsupported shipment date column %q", filter.DateColumn)
	}

	if err := stmt.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) ListDeliveries(ctx context.Context, db *gorm.DB, filter domain.DeliveryFilter) ([]domain.Delivery, error) {
	var deliveries []domain.Delivery
	stmt := db.WithContext(ctx).Model(&domain.Delivery{})
	if filter.DeliveryType != "" {
		stmt = stmt.Where("delivery_type = ?", filter.DeliveryType)
	}
	stmt = filter.Range.Apply(stmt, "created_at")
	err := stmt.
		Order("created_at DESC, id DESC").
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}
