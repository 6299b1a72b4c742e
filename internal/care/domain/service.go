package domain

import (
	"context"

	"github.com/smallbiznis/bizpulse/internal/daterange"
)

type Service interface {
	TotalTickets(ctx context.Context, r daterange.Range) (TicketTotal, error)
	TicketsByCategory(ctx context.Context, r daterange.Range) ([]TicketCategory, error)
	TicketTrends(ctx context.Context, r daterange.Range) ([]TicketTrend, error)
}
