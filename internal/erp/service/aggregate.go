package service

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	"github.com/smallbiznis/bizpulse/internal/erp/domain"
	"github.com/smallbiznis/bizpulse/internal/money"
)

func transactionDate(t domain.SalesTransaction) time.Time { return t.TransactionDate }

func saleAmount(t domain.SalesTransaction) money.Amount { return t.Amount }

func dueAmount(t domain.SalesTransaction) money.Amount { return t.DueAmount }

// TotalSales sums amount over the transactions inside r.
func TotalSales(rows []domain.SalesTransaction, r daterange.Range, currency string) domain.SalesTotal {
	matched := daterange.Filter(rows, r, transactionDate)
	return domain.SalesTotal{
		TotalSales:       money.Float(money.Sum(matched, saleAmount)),
		TransactionCount: len(matched),
		Currency:         currency,
	}
}

// SalesByCategory groups the transactions inside r by category name, largest
// total first. Equal totals keep the order in which categories first appear.
func SalesByCategory(rows []domain.SalesTransaction, r daterange.Range, uncategorized string) []domain.CategorySales {
	type bucket struct {
		name  string
		total decimal.Decimal
		count int
	}

	index := make(map[string]int)
	buckets := make([]bucket, 0)
	for _, row := range daterange.Filter(rows, r, transactionDate) {
		name := uncategorized
		if row.CategoryName != nil && strings.TrimSpace(*row.CategoryName) != "" {
			name = *row.CategoryName
		}
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, bucket{name: name, total: decimal.Zero})
		}
		buckets[i].total = buckets[i].total.Add(row.Amount.OrZero())
		buckets[i].count++
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].total.GreaterThan(buckets[j].total)
	})

	out := make([]domain.CategorySales, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.CategorySales{
			Name:  b.name,
			Total: money.Float(b.total),
			Count: b.count,
		})
	}
	return out
}

// OverdueAmount sums due_amount over overdue transactions inside r.
func OverdueAmount(rows []domain.SalesTransaction, r daterange.Range, currency string) domain.Overdue {
	overdue := make([]domain.SalesTransaction, 0, len(rows))
	for _, row := range daterange.Filter(rows, r, transactionDate) {
		if row.PaymentStatus == domain.PaymentStatusOverdue {
			overdue = append(overdue, row)
		}
	}
	return domain.Overdue{
		Amount:   money.Float(money.Sum(overdue, dueAmount)),
		Count:    len(overdue),
		Currency: currency,
	}
}

// TopSelling orders items by sales_count desc then product_name and keeps
// the first limit.
func TopSelling(items []domain.InventoryItem, limit int) []domain.InventoryItem {
	sorted := make([]domain.InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SalesCount != sorted[j].SalesCount {
			return sorted[i].SalesCount > sorted[j].SalesCount
		}
		return sorted[i].ProductName < sorted[j].ProductName
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// LowStock keeps items whose stock fell below their reorder point.
func LowStock(items []domain.InventoryItem) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0)
	for _, item := range items {
		if item.CurrentStock < item.ReorderPoint {
			out = append(out, item)
		}
	}
	return out
}
