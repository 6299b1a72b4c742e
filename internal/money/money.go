// Package money coerces loosely typed numeric columns into decimals and sums them.
package money

import (
	"database/sql/driver"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits reported values are rounded to.
const Scale = 2

// Amount is a numeric column read leniently. Scanning never fails: NULL,
// blank, non-numeric and non-finite inputs all yield an invalid Amount whose
// Decimal is zero.
type Amount struct {
	Decimal decimal.Decimal
	Valid   bool
}

func ParseAmount(raw string) Amount {
	return coerce(raw)
}

func (a *Amount) Scan(src any) error {
	*a = coerce(src)
	return nil
}

func (a Amount) Value() (driver.Value, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Decimal.String(), nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

// OrZero returns the decimal value, zero when invalid.
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Decimal
}

func coerce(src any) Amount {
	switch v := src.(type) {
	case nil:
		return Amount{}
	case decimal.Decimal:
		return finite(v)
	case int64:
		return Amount{Decimal: decimal.NewFromInt(v), Valid: true}
	case int:
		return Amount{Decimal: decimal.NewFromInt(int64(v)), Valid: true}
	case int32:
		return Amount{Decimal: decimal.NewFromInt32(v), Valid: true}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Amount{}
		}
		return Amount{Decimal: decimal.NewFromFloat(v), Valid: true}
	case float32:
		return coerce(float64(v))
	case []byte:
		return coerce(string(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return Amount{}
		}
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			// tolerate "1e3"-style floats the decimal parser rejects
			f, ferr := strconv.ParseFloat(trimmed, 64)
			if ferr != nil {
				return Amount{}
			}
			return coerce(f)
		}
		return finite(d)
	default:
		return Amount{}
	}
}

// finite rejects decimals too large to report as a float64.
func finite(d decimal.Decimal) Amount {
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Amount{}
	}
	return Amount{Decimal: d, Valid: true}
}

// Sum adds the amount extracted from every row; invalid amounts add zero.
func Sum[T any](rows []T, amount func(T) Amount) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(amount(row).OrZero())
	}
	return total
}

// Float rounds d to Scale digits for the JSON contract.
func Float(d decimal.Decimal) float64 {
	return d.Round(Scale).InexactFloat64()
}
