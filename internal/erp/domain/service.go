package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/bizpulse/internal/daterange"
)

type Service interface {
	SalesTotal(ctx context.Context, r daterange.Range) (SalesTotal, error)
	SalesByCategory(ctx context.Context, r daterange.Range) ([]CategorySales, error)
	OverdueAmount(ctx context.Context, r daterange.Range) (Overdue, error)
	// HotSelling returns the best sellers; limit 0 selects the configured default.
	HotSelling(ctx context.Context, limit int) ([]InventoryItem, error)
	LowStock(ctx context.Context) ([]InventoryItem, error)
}

var (
	ErrInvalidLimit = errors.New("invalid_limit")
)
