package service

import (
	"sort"
	"time"

	"github.com/smallbiznis/bizpulse/internal/care/domain"
	"github.com/smallbiznis/bizpulse/internal/daterange"
)

func raisedDate(t domain.ServiceTicket) time.Time { return t.RaisedDate }

// CountByCategory counts tickets per issue category, most tickets first.
// Equal counts keep the order in which categories first appear.
func CountByCategory(rows []domain.ServiceTicket, r daterange.Range) []domain.TicketCategory {
	index := make(map[string]int)
	out := make([]domain.TicketCategory, 0)
	for _, row := range daterange.Filter(rows, r, raisedDate) {
		i, ok := index[row.IssueCategory]
		if !ok {
			i = len(out)
			index[row.IssueCategory] = i
			out = append(out, domain.TicketCategory{Category: row.IssueCategory})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Trends splits tickets per raised day into open and resolved, oldest day
// first. Closed tickets count as resolved; every other status counts as open.
func Trends(rows []domain.ServiceTicket, r daterange.Range) []domain.TicketTrend {
	index := make(map[string]int)
	out := make([]domain.TicketTrend, 0)
	for _, row := range daterange.Filter(rows, r, raisedDate) {
		key := row.RaisedDate.UTC().Format(daterange.Layout)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, domain.TicketTrend{Date: key})
		}
		if row.IsResolved() {
			out[i].Resolved++
		} else {
			out[i].Open++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
