package service

import (
	"time"

	"github.com/smallbiznis/bizpulse/internal/daterange"
	"github.com/smallbiznis/bizpulse/internal/logistics/domain"
)

func deliveryCreatedAt(d domain.Delivery) time.Time { return d.CreatedAt }

// deliveryRules maps each delivery type to the status it must have to be
// counted. An empty status counts every delivery of that type.
var deliveryRules = map[string]struct {
	status string
	count  func(*domain.DeliverySummary)
}{
	domain.DeliveryTypeCycleDelivered:  {domain.DeliveryStatusCompleted, func(s *domain.DeliverySummary) { s.CycleDelivered++ }},
	domain.DeliveryTypePickupPending:   {domain.DeliveryStatusPending, func(s *domain.DeliverySummary) { s.PickupPending++ }},
	domain.DeliveryTypePickupCleared:   {domain.DeliveryStatusCompleted, func(s *domain.DeliverySummary) { s.PickupCleared++ }},
	domain.DeliveryTypeOutsideDelivery: {"", func(s *domain.DeliverySummary) { s.OutsideDelivery++ }},
}

// SummarizeDeliveries buckets the deliveries inside r by type. It also
// reports how many rows carried a type outside the known set; those rows are
// not counted.
func SummarizeDeliveries(rows []domain.Delivery, r daterange.Range) (domain.DeliverySummary, int) {
	var (
		summary domain.DeliverySummary
		unknown int
	)
	for _, row := range daterange.Filter(rows, r, deliveryCreatedAt) {
		rule, ok := deliveryRules[row.DeliveryType]
		if !ok {
			unknown++
			continue
		}
		if rule.status == "" || rule.status == row.Status {
			rule.count(&summary)
		}
	}
	return summary, unknown
}

// FilterDeliveries keeps the deliveries inside r matching deliveryType, or
// every type when deliveryType is empty. Order is preserved.
func FilterDeliveries(rows []domain.Delivery, r daterange.Range, deliveryType string) []domain.Delivery {
	out := make([]domain.Delivery, 0, len(rows))
	for _, row := range daterange.Filter(rows, r, deliveryCreatedAt) {
		if deliveryType == "" || row.DeliveryType == deliveryType {
			out = append(out, row)
		}
	}
	return out
}
