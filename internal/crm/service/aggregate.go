package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/bizpulse/internal/crm/domain"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	"github.com/smallbiznis/bizpulse/internal/money"
)

func leadDate(l domain.Lead) time.Time { return l.LeadDate }

// Report computes lead volume and value for the leads inside r. A lead is
// active while it is neither won nor lost.
func Report(rows []domain.Lead, r daterange.Range, currency string) domain.LeadReporting {
	var (
		report   = domain.LeadReporting{Currency: currency}
		total    = decimal.Zero
		wonValue = decimal.Zero
	)
	for _, lead := range daterange.Filter(rows, r, leadDate) {
		report.Volume++
		value := lead.ExpectedValue.OrZero()
		total = total.Add(value)

		switch lead.Status {
		case domain.LeadStatusWon:
			report.WonCount++
			wonValue = wonValue.Add(value)
		case domain.LeadStatusLost:
			report.LostCount++
		default:
			report.ActiveCount++
		}
	}
	report.TotalValue = money.Float(total)
	report.WonValue = money.Float(wonValue)
	return report
}

// CountByStatus counts leads per status, most leads first and then by status.
func CountByStatus(rows []domain.Lead, r daterange.Range) []domain.LeadStatusCount {
	index := make(map[string]int)
	out := make([]domain.LeadStatusCount, 0)
	for _, lead := range daterange.Filter(rows, r, leadDate) {
		i, ok := index[lead.Status]
		if !ok {
			i = len(out)
			index[lead.Status] = i
			out = append(out, domain.LeadStatusCount{Status: lead.Status})
		}
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// FilterLeads keeps the leads inside r, preserving order.
func FilterLeads(rows []domain.Lead, r daterange.Range) []domain.Lead {
	out := make([]domain.Lead, 0, len(rows))
	return append(out, daterange.Filter(rows, r, leadDate)...)
}
