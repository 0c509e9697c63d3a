package utils

import (
	"strconv"
	"strings"
)

// FormatUSD formats an amount as a string like "$1,234.56" with comma
// thousands separators and two decimal places.
func FormatUSD(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	b.Grow(len(s) + len(whole)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

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
	b.WriteString(frac)

	return b.String()
}
