// Package discount implements the pricing rules applied to member orders.
//
// A Policy is chosen once, when the application is wired, and shared by every
// order priced afterwards. Policies are pure: they inspect the member and the
// item price and return the amount to take off.
package discount

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/member-pricing/internal/domain/member"
)

// Kind enumerates the supported discount policies.
type Kind string

const (
	// KindFixed takes a constant amount off for priority members.
	KindFixed Kind = "fixed"
	// KindRate takes a fraction of the price off for priority members.
	KindRate Kind = "rate"
)

// Defaults used when no explicit amount or rate is configured.
const (
	DefaultFixedAmount int64 = 1000
	DefaultRate              = "0.10"
)

// ErrUnsupportedKind is returned by New for an unknown Kind.
var ErrUnsupportedKind = errors.New("unsupported discount kind")

// Policy computes the discount for a member buying an item at price.
type Policy interface {
	Discount(m member.Member, price int64) int64
}

// New builds the policy for kind. fixedAmount is used by KindFixed and rate
// by KindRate.
func New(kind Kind, fixedAmount int64, rate decimal.Decimal) (Policy, error) {
	switch kind {
	case KindFixed:
		return NewFixed(fixedAmount), nil
	case KindRate:
		return NewRate(rate), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedKind, "%q", kind)
	}
}

// ParseRate parses a decimal fraction such as "0.10".
func ParseRate(s string) (decimal.Decimal, error) {
	r, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse rate %q", s)
	}
	return r, nil
}
