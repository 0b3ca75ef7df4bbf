package order

import (
	"context"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/xenking/member-pricing/internal/domain/member"
)

// Order is a priced purchase of a single item by a member.
type Order struct {
	MemberID      member.ID
	ItemName      string
	ItemPrice     int64
	DiscountPrice int64
}

// CalculatePrice returns the price after discount, floored at zero.
func (o Order) CalculatePrice() int64 {
	total := o.ItemPrice - o.DiscountPrice
	if total < 0 {
		return 0
	}
	return total
}

func (o Order) String() string {
	return fmt.Sprintf("Order{memberId=%d, itemName=%s, itemPrice=%d, discountPrice=%d}",
		o.MemberID, o.ItemName, o.ItemPrice, o.DiscountPrice)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (o Order) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("member_id", int64(o.MemberID))
	enc.AddString("item_name", o.ItemName)
	enc.AddInt64("item_price", o.ItemPrice)
	enc.AddInt64("discount_price", o.DiscountPrice)
	enc.AddInt64("final_price", o.CalculatePrice())
	return nil
}

// Service prices orders for registered members.
type Service interface {
	CreateOrder(ctx context.Context, memberID member.ID, itemName string, itemPrice int64) (Order, error)
}
