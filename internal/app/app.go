package app

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/xenking/member-pricing/internal/domain/member"
)

// Demo fixtures shared by the console entry points.
const (
	demoMemberID  member.ID = 1
	demoItemName            = "spring"
	demoItemPrice int64     = 10000
)

func demoMember() member.Member {
	return member.New(demoMemberID, "memberA", member.GradePriority)
}

// RunMemberApp wires the container from cfg and registers then looks up the
// demo member.
func RunMemberApp(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	c, err := NewContainer(*cfg, lg, WithTelemetry(m.TracerProvider(), m.MeterProvider()))
	if err != nil {
		return errors.Wrap(err, "create container")
	}
	return MemberDemo(ctx, lg, c)
}

// RunOrderApp wires the container from cfg, registers the demo member and
// prices an order for it.
func RunOrderApp(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	c, err := NewContainer(*cfg, lg, WithTelemetry(m.TracerProvider(), m.MeterProvider()))
	if err != nil {
		return errors.Wrap(err, "create container")
	}
	return OrderDemo(ctx, lg, c)
}

// MemberDemo joins the demo member through the container's member service and
// reads it back.
func MemberDemo(ctx context.Context, lg *zap.Logger, c *Container) error {
	members := c.MemberService()

	joined := demoMember()
	if err := members.Join(ctx, joined); err != nil {
		return errors.Wrap(err, "join")
	}
	found, err := members.FindMember(ctx, joined.ID)
	if err != nil {
		return errors.Wrap(err, "find member")
	}

	lg.Info("Member joined",
		zap.String("new_member", joined.Name),
		zap.String("find_member", found.Name),
	)
	return nil
}

// OrderDemo joins the demo member and creates an order for it. Under
// WiringUnshared the order service cannot see the member and the demo fails
// with member.ErrNotFound.
func OrderDemo(ctx context.Context, lg *zap.Logger, c *Container) error {
	members := c.MemberService()
	orders := c.OrderService()

	if err := members.Join(ctx, demoMember()); err != nil {
		return errors.Wrap(err, "join")
	}
	o, err := orders.CreateOrder(ctx, demoMemberID, demoItemName, demoItemPrice)
	if err != nil {
		return errors.Wrap(err, "create order")
	}

	lg.Info("Order created",
		zap.Object("order", o),
		zap.Int64("calculate_price", o.CalculatePrice()),
	)
	return nil
}
