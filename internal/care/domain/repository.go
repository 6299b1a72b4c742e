package domain

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/daterange"
	"gorm.io/gorm"
)

type Repository interface {
	CountTickets(ctx context.Context, db *gorm.DB, r daterange.Range) (int64, error)
	// ListTickets returns tickets raised in r ordered by raised_date, id.
	ListTickets(ctx context.Context, db *gorm.DB, r daterange.Range) ([]ServiceTicket, error)
}
