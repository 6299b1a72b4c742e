package domain

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/daterange"
)

type Service interface {
	LeadReporting(ctx context.Context, r daterange.Range) (LeadReporting, error)
	Customers(ctx context.Context, r daterange.Range) ([]Lead, error)
	LeadsByStatus(ctx context.Context, r daterange.Range) ([]LeadStatusCount, error)
}
