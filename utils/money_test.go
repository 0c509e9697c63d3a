package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salestrack/utils"
)

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{25.50, "$25.50"},
		{999.99, "$999.99"},
		{1000, "$1,000.00"},
		{1700, "$1,700.00"},
		{1234567.89, "$1,234,567.89"},
		{-45.99, "-$45.99"},
		{-1234.50, "-$1,234.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, utils.FormatUSD(tc.amount), "amount %v", tc.amount)
	}
}
