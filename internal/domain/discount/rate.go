package discount

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/member-pricing/internal/domain/member"
)

var _ Policy = Rate{}

// Rate takes price*Rate off for priority members, truncated toward zero to a
// whole currency unit.
type Rate struct {
	Rate decimal.Decimal
}

// NewRate returns a Rate policy for the given fraction.
func NewRate(rate decimal.Decimal) Rate {
	return Rate{Rate: rate}
}

// Discount implements Policy.
func (p Rate) Discount(m member.Member, price int64) int64 {
	if !m.IsPriority() {
		return 0
	}
	return decimal.NewFromInt(price).Mul(p.Rate).IntPart()
}
