package discount

import "github.com/xenking/member-pricing/internal/domain/member"

var _ Policy = Fixed{}

// Fixed takes Amount off regardless of price for priority members.
type Fixed struct {
	Amount int64
}

// NewFixed returns a Fixed policy taking amount off.
func NewFixed(amount int64) Fixed {
	return Fixed{Amount: amount}
}

// Discount implements Policy.
func (p Fixed) Discount(m member.Member, _ int64) int64 {
	if !m.IsPriority() {
		return 0
	}
	return p.Amount
}
