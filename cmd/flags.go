package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// parseAmount reads a decimal flag value; empty means zero.
func parseAmount(flag, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return d, nil
}
