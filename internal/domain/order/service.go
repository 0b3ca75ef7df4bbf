package order

import (
	"context"

	"github.com/xenking/member-pricing/internal/domain/discount"
	"github.com/xenking/member-pricing/internal/domain/member"
)

var _ Service = (*DefaultService)(nil)

// DefaultService encapsulates order pricing. Its store and policy are always
// supplied by the caller.
type DefaultService struct {
	members member.Store
	policy  discount.Policy
}

// NewService creates a DefaultService with the required domain dependencies.
func NewService(members member.Store, policy discount.Policy) *DefaultService {
	return &DefaultService{
		members: members,
		policy:  policy,
	}
}

// CreateOrder looks up the member, applies the discount policy and returns
// the resulting order. An unknown member aborts pricing with the store's
// error, returned unchanged.
func (s *DefaultService) CreateOrder(ctx context.Context, memberID member.ID, itemName string, itemPrice int64) (Order, error) {
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return Order{}, err
	}

	return Order{
		MemberID:      memberID,
		ItemName:      itemName,
		ItemPrice:     itemPrice,
		DiscountPrice: s.policy.Discount(m, itemPrice),
	}, nil
}

// Store returns the member store the service was built with.
func (s *DefaultService) Store() member.Store {
	return s.members
}

// Policy returns the discount policy the service was built with.
func (s *DefaultService) Policy() discount.Policy {
	return s.policy
}
