package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/member-pricing/internal/domain/discount"
)

// Config selects which implementations the Container wires and how they are
// shared. It is loadable from environment variables (PRICING_ prefix) and
// flags.
type Config struct {
	Wiring         Wiring        `default:"shared" usage:"Dependency sharing mode: shared or unshared" env:"WIRING" flag:"wiring"`
	DiscountPolicy discount.Kind `default:"fixed" usage:"Discount policy: fixed or rate" env:"DISCOUNT_POLICY" flag:"discount-policy"`
	FixedAmount    int64         `default:"1000" usage:"Amount taken off by the fixed policy" env:"FIXED_AMOUNT" flag:"fixed-amount"`
	DiscountRate   string        `default:"0.10" usage:"Fraction of the price taken off by the rate policy" env:"DISCOUNT_RATE" flag:"discount-rate"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Wiring:         WiringShared,
		DiscountPolicy: discount.KindFixed,
		FixedAmount:    discount.DefaultFixedAmount,
		DiscountRate:   discount.DefaultRate,
	}
}

// LoadConfig loads configuration from PRICING_* environment variables and,
// when args is non-empty, from command line flags.
func LoadConfig(args []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "PRICING",
		SkipFiles: true,
		SkipFlags: len(args) == 0,
		Args:      args,
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Wiring {
	case WiringShared, WiringUnshared:
	default:
		return errors.Wrapf(ErrUnsupportedWiring, "%q", c.Wiring)
	}
	if _, err := c.policy(); err != nil {
		return err
	}
	return nil
}

func (c Config) rate() (decimal.Decimal, error) {
	return discount.ParseRate(c.DiscountRate)
}

// policy builds the configured discount policy.
func (c Config) policy() (discount.Policy, error) {
	rate, err := c.rate()
	if err != nil {
		return nil, errors.Wrap(err, "discount rate")
	}
	p, err := discount.New(c.DiscountPolicy, c.FixedAmount, rate)
	if err != nil {
		return nil, errors.Wrap(err, "discount policy")
	}
	return p, nil
}
