package domain

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/daterange"
	"gorm.io/gorm"
)

type Repository interface {
	// ListLeads returns leads dated in r, newest first.
	ListLeads(ctx context.Context, db *gorm.DB, r daterange.Range) ([]Lead, error)
}
