package payoff

import "github.com/shopspring/decimal"

const (
	// DefaultCapMonths bounds a simulation at thirty years.
	DefaultCapMonths = 360
	// DefaultPrecision rounds interest to hundredths of a currency unit.
	DefaultPrecision int32 = 2
)

type config struct {
	capMonths int
	extra     decimal.Decimal
	precision int32
	dust      *decimal.Decimal
}

// Option tunes a simulation.
type Option func(*config)

// WithCapMonths sets the maximum number of simulated months.
func WithCapMonths(months int) Option {
	return func(c *config) { c.capMonths = months }
}

// WithExtraPayment adds a fixed amount on top of the minimum payments to the
// monthly pool.
func WithExtraPayment(amount decimal.Decimal) Option {
	return func(c *config) { c.extra = amount }
}

// WithPrecision sets the number of decimal places interest is rounded to.
// Use 0 for currencies without a minor unit.
func WithPrecision(places int32) Option {
	return func(c *config) { c.precision = places }
}

// WithDustThreshold sets the balance below which a debt is settled in full.
// It defaults to one minor unit at the configured precision.
func WithDustThreshold(amount decimal.Decimal) Option {
	return func(c *config) { c.dust = &amount }
}

func newConfig(opts []Option) config {
	cfg := config{
		capMonths: DefaultCapMonths,
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c config) dustThreshold() decimal.Decimal {
	if c.dust != nil {
		return *c.dust
	}
	return decimal.New(1, -c.precision)
}
