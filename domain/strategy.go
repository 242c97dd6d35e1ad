package domain

import (
	"fmt"
	"strings"
)

// Strategy decides which open debt receives the surplus each month.
type Strategy string

const (
	// StrategyAvalanche targets the highest annual interest rate first.
	StrategyAvalanche Strategy = "avalanche"
	// StrategySnowball targets the smallest remaining balance first.
	StrategySnowball Strategy = "snowball"
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{StrategyAvalanche, StrategySnowball}

func (s Strategy) String() string {
	return string(s)
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyAvalanche || s == StrategySnowball
}

// ParseStrategy accepts a strategy name in any case.
func ParseStrategy(value string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown strategy %q (want avalanche or snowball)", value)
	}
	return s, nil
}
