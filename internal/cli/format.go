// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// NoValue is printed for a missing or non-numeric amount.
const NoValue = "—"

// FormatMoney formats a dollar amount with thousands separators.
// e.g., 1234567.5 -> "$1,234,567.50", 80 -> "$80.00", -5 -> "-$5.00"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	cents := math.Round(v * 100)
	whole := int64(cents / 100)
	frac := int64(cents) % 100
	return fmt.Sprintf("$%s.%02d", humanize.Comma(whole), frac)
}

// FormatAmount formats an optional amount, NoValue when nil.
func FormatAmount(v *float64) string {
	if v == nil {
		return NoValue
	}
	return FormatMoney(*v)
}

// FormatCompact formats a dollar amount with an SI suffix for chart labels.
// e.g., 1234567 -> "$1.2M", 950 -> "$950"
func FormatCompact(v float64) string {
	if math.Abs(v) < 1000 {
		return fmt.Sprintf("$%.0f", v)
	}
	value, prefix := humanize.ComputeSI(v)
	return fmt.Sprintf("$%s%s", humanize.FtoaWithDigits(value, 1), prefix)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatElapsed formats a load duration for status lines.
// e.g., 1.5s -> "1.5s", 42ms -> "42ms"
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
