// Package price interprets the locale-ambiguous price strings served by the
// backend and computes cart totals.
//
// Server prices may use "." or "," as the decimal separator, with or without
// thousands grouping. Every component that needs a numeric amount must go
// through Parse so the cart panel, checkout and order summaries never disagree
// on a total.
package price

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/model"
)

// ErrUnparseable reports a price string with no recoverable numeric value.
// Callers surface it instead of silently counting the line as zero.
var ErrUnparseable = errors.New("price: unparseable value")

// Parse converts a server price string into a decimal amount.
//
// All characters except digits, comma, period and minus are stripped. When
// both "," and "." appear, "." is treated as thousands grouping and "," as
// the decimal separator; otherwise a lone "," is the decimal separator.
func Parse(value string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseable, value)
	}
	var normalized string
	if strings.Contains(cleaned, ",") && strings.Contains(cleaned, ".") {
		normalized = strings.ReplaceAll(cleaned, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	} else {
		normalized = strings.ReplaceAll(cleaned, ",", ".")
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseable, value)
	}
	return d, nil
}

// ItemSubtotal returns unit price times quantity for one cart line.
func ItemSubtotal(item model.CartItem) (decimal.Decimal, error) {
	unit, err := Parse(item.Product.Price)
	if err != nil {
		return decimal.Zero, err
	}
	return unit.Mul(decimal.NewFromInt(int64(item.Quantity))), nil
}

// CartTotal sums the subtotals of all lines. The first unparseable line aborts
// the computation.
func CartTotal(items []model.CartItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		sub, err := ItemSubtotal(item)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(sub)
	}
	return total, nil
}

// FormatBRL renders an amount in Brazilian real notation: thousands grouped
// with "." and "," as the decimal separator, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
