package domain

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/daterange"
	"gorm.io/gorm"
)

// ShipmentFilter scopes an exact count. DateColumn names the column the
// range applies to, created_at or received_date.
type ShipmentFilter struct {
	ShipmentType string
	Status       string
	DateColumn   string
	Range        daterange.Range
}

type DeliveryFilter struct {
	DeliveryType string
	Range        daterange.Range
}

type Repository interface {
	CountShipments(ctx context.Context, db *gorm.DB, filter ShipmentFilter) (int64, error)
	// ListDeliveries returns matching deliveries, newest first.
	ListDeliveries(ctx context.Context, db *gorm.DB, filter DeliveryFilter) ([]Delivery, error)
}
