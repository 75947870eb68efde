package utils

import (
	"fmt"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatAmount renders an amount with its currency code when one is set.
// Totals are plain numeric sums, so the currency shown is whatever the
// item carried; mixed currencies are not reconciled here.
func FormatAmount(amount float64, currency string) string {
	cur := strings.TrimSpace(currency)
	if cur == "" {
		return FormatMoney(amount)
	}
	return FormatMoney(amount) + " " + cur
}
