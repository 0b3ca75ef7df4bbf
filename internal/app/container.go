package app

import (
	"fmt"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/member-pricing/internal/domain/discount"
	"github.com/xenking/member-pricing/internal/domain/member"
	"github.com/xenking/member-pricing/internal/domain/order"
	"github.com/xenking/member-pricing/internal/instrument"
	"github.com/xenking/member-pricing/internal/storage/memory"
)

// Wiring controls whether the Container hands out shared instances.
type Wiring string

const (
	// WiringShared builds every dependency once and reuses it for all consumers.
	WiringShared Wiring = "shared"
	// WiringUnshared builds a private dependency graph on each accessor call.
	WiringUnshared Wiring = "unshared"
)

// ErrUnsupportedWiring is returned for an unknown Wiring value.
var ErrUnsupportedWiring = errors.New("unsupported wiring mode")

// Option customizes a Container.
type Option func(*options)

type options struct {
	newStore  func() member.Store
	newPolicy func() discount.Policy
	tp        trace.TracerProvider
	mp        metric.MeterProvider
}

// WithStoreFactory replaces the default in-memory member store.
func WithStoreFactory(f func() member.Store) Option {
	return func(o *options) { o.newStore = f }
}

// WithPolicyFactory replaces the configured discount policy.
func WithPolicyFactory(f func() discount.Policy) Option {
	return func(o *options) { o.newPolicy = f }
}

// WithTelemetry wraps every order service in tracing and metrics.
func WithTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) Option {
	return func(o *options) {
		o.tp = tp
		o.mp = mp
	}
}

// Container is the composition root. It is the only place that decides which
// store and discount policy are in use and whether consumers share them.
//
// With WiringShared every accessor returns the same instance on each call, and
// the member and order services reference the identical store. With
// WiringUnshared each accessor call builds fresh instances, so members joined
// through one service are invisible to services obtained by another call.
type Container struct {
	wiring    Wiring
	lg        *zap.Logger
	newStore  func() member.Store
	newPolicy func() discount.Policy
	telemetry *instrument.Telemetry

	// Set only for WiringShared.
	store   member.Store
	policy  discount.Policy
	members member.Service
	orders  order.Service
}

// NewContainer validates cfg and wires the application graph. Shared
// instances are built eagerly, so accessors never fail.
func NewContainer(cfg Config, lg *zap.Logger, opts ...Option) (*Container, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.newStore == nil {
		o.newStore = func() member.Store { return memory.NewMemberStore() }
	}
	if o.newPolicy == nil {
		// Validate above guarantees the policy builds.
		policy, _ := cfg.policy()
		o.newPolicy = func() discount.Policy { return policy }
	}

	c := &Container{
		wiring:    cfg.Wiring,
		lg:        lg.Named("container"),
		newStore:  o.newStore,
		newPolicy: o.newPolicy,
	}
	if o.tp != nil && o.mp != nil {
		t, err := instrument.NewTelemetry(o.tp, o.mp)
		if err != nil {
			return nil, errors.Wrap(err, "create telemetry")
		}
		c.telemetry = t
	}

	if c.wiring == WiringShared {
		c.store = c.buildStore()
		c.policy = c.buildPolicy()
		c.members = c.buildMemberService(c.store)
		c.orders = c.buildOrderService(c.store, c.policy)
	}

	c.lg.Info("Container ready",
		zap.String("wiring", string(c.wiring)),
		zap.String("discount_policy", string(cfg.DiscountPolicy)),
		zap.Bool("telemetry", c.telemetry != nil),
	)
	return c, nil
}

// Wiring reports the sharing mode the container was built with.
func (c *Container) Wiring() Wiring {
	return c.wiring
}

// MemberStore returns the member store. Under WiringUnshared each call
// returns a new, empty store.
func (c *Container) MemberStore() member.Store {
	if c.wiring == WiringShared {
		return c.store
	}
	return c.buildStore()
}

// DiscountPolicy returns the active discount policy.
func (c *Container) DiscountPolicy() discount.Policy {
	if c.wiring == WiringShared {
		return c.policy
	}
	return c.buildPolicy()
}

// MemberService returns the member service.
func (c *Container) MemberService() member.Service {
	if c.wiring == WiringShared {
		return c.members
	}
	return c.buildMemberService(c.buildStore())
}

// OrderService returns the order service.
func (c *Container) OrderService() order.Service {
	if c.wiring == WiringShared {
		return c.orders
	}
	return c.buildOrderService(c.buildStore(), c.buildPolicy())
}

func (c *Container) buildStore() member.Store {
	s := c.newStore()
	c.lg.Debug("Built member store", zap.String("type", typeName(s)))
	return s
}

func (c *Container) buildPolicy() discount.Policy {
	p := c.newPolicy()
	c.lg.Debug("Built discount policy", zap.String("type", typeName(p)))
	return p
}

func (c *Container) buildMemberService(store member.Store) member.Service {
	c.lg.Debug("Built member service")
	return member.NewService(store)
}

func (c *Container) buildOrderService(store member.Store, policy discount.Policy) order.Service {
	var svc order.Service = order.NewService(store, policy)
	if c.telemetry != nil {
		svc = c.telemetry.Wrap(svc)
	}
	c.lg.Debug("Built order service")
	return svc
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
