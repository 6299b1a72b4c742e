package domain

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/daterange"
	"gorm.io/gorm"
)

type SalesFilter struct {
	Range         daterange.Range
	PaymentStatus string
}

type Repository interface {
	// ListSales returns matching transactions ordered by transaction_date, id.
	ListSales(ctx context.Context, db *gorm.DB, filter SalesFilter) ([]SalesTransaction, error)
	ListTopSelling(ctx context.Context, db *gorm.DB, limit int) ([]InventoryItem, error)
	ListInventory(ctx context.Context, db *gorm.DB) ([]InventoryItem, error)
}
