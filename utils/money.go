package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice formats an amount in major units (dollars) as a string like "$1,250.00".
// Uses comma as thousands separator and always prints two decimals.
// amount must be non-negative.
func FormatPrice(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + $ + fraction
	b.Grow(len(whole) + len(whole)/3 + len(frac) + 2)
	b.WriteString("$")

	if len(whole) <= 3 {
		b.WriteString(whole)
	} else {
		// Insert separators from the left.
		rem := len(whole) % 3
		if rem == 0 {
			rem = 3
		}
		b.WriteString(whole[:rem])
		for i := rem; i < len(whole); i += 3 {
			b.WriteByte(',')
			b.WriteString(whole[i : i+3])
		}
	}

	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
