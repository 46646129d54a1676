package utils

import (
	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount with two decimals and the INR prefix used on tickets.
func FormatPrice(amount decimal.Decimal) string {
	return "INR " + amount.StringFixed(2)
}

// SumPrices adds up per-seat prices without float drift.
func SumPrices(prices []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p)
	}
	return total
}
