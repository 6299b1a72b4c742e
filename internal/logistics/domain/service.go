package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/bizpulse/internal/daterange"
)

type Service interface {
	ShipmentSummary(ctx context.Context, r daterange.Range) (ShipmentSummary, error)
	DeliverySummary(ctx context.Context, r daterange.Range) (DeliverySummary, error)
	// DeliveryList lists deliveries in r; an empty deliveryType lists every type.
	DeliveryList(ctx context.Context, r daterange.Range, deliveryType string) ([]Delivery, error)
}

var (
	ErrInvalidDeliveryType = errors.New("invalid_delivery_type")
)
