package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xenking/member-pricing/internal/domain/discount"
	"github.com/xenking/member-pricing/internal/domain/member"
	"github.com/xenking/member-pricing/internal/domain/order"
	"github.com/xenking/member-pricing/internal/instrument"
	"github.com/xenking/member-pricing/internal/storage/memory"
)

func newContainer(t *testing.T, cfg Config, opts ...Option) *Container {
	t.Helper()
	c, err := NewContainer(cfg, zaptest.NewLogger(t), opts...)
	require.NoError(t, err)
	return c
}

func sharedConfig() Config {
	return DefaultConfig()
}

func unsharedConfig() Config {
	cfg := DefaultConfig()
	cfg.Wiring = WiringUnshared
	return cfg
}

func TestContainer_Shared_ReturnsSameInstances(t *testing.T) {
	c := newContainer(t, sharedConfig())

	assert.Same(t, c.MemberService(), c.MemberService())
	assert.Same(t, c.OrderService(), c.OrderService())
	assert.Same(t, c.MemberStore(), c.MemberStore())
	assert.Equal(t, c.DiscountPolicy(), c.DiscountPolicy())
	assert.Equal(t, WiringShared, c.Wiring())
}

func TestContainer_Shared_ServicesShareStore(t *testing.T) {
	c := newContainer(t, sharedConfig())

	members, ok := c.MemberService().(*member.DefaultService)
	require.True(t, ok)
	orders, ok := c.OrderService().(*order.DefaultService)
	require.True(t, ok)

	assert.Same(t, c.MemberStore(), members.Store())
	assert.Same(t, c.MemberStore(), orders.Store())
	assert.Equal(t, c.DiscountPolicy(), orders.Policy())
}

func TestContainer_Shared_JoinVisibleToOrders(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, sharedConfig())

	first := c.MemberService()
	second := c.MemberService()
	require.Same(t, first, second)

	require.NoError(t, first.Join(ctx, member.New(1, "A", member.GradePriority)))

	o, err := c.OrderService().CreateOrder(ctx, 1, "book", 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), o.DiscountPrice)
	assert.Equal(t, int64(9000), o.CalculatePrice())
}

func TestContainer_Unshared_ReturnsFreshInstances(t *testing.T) {
	c := newContainer(t, unsharedConfig())

	assert.NotSame(t, c.MemberService(), c.MemberService())
	assert.NotSame(t, c.OrderService(), c.OrderService())
	assert.NotSame(t, c.MemberStore(), c.MemberStore())

	members := c.MemberService().(*member.DefaultService)
	orders := c.OrderService().(*order.DefaultService)
	assert.NotSame(t, members.Store(), orders.Store())
}

func TestContainer_Unshared_JoinInvisibleToOrders(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, unsharedConfig())

	require.NoError(t, c.MemberService().Join(ctx, member.New(1, "A", member.GradePriority)))

	o, err := c.OrderService().CreateOrder(ctx, 1, "book", 10000)
	require.ErrorIs(t, err, member.ErrNotFound)
	assert.Equal(t, order.Order{}, o)
}

func TestContainer_Unshared_OrderServicesIsolated(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, unsharedConfig())

	a := c.OrderService().(*order.DefaultService)
	b := c.OrderService().(*order.DefaultService)

	require.NoError(t, a.Store().Save(ctx, member.New(1, "A", member.GradePriority)))

	_, err := a.CreateOrder(ctx, 1, "book", 10000)
	require.NoError(t, err)
	_, err = b.CreateOrder(ctx, 1, "book", 10000)
	require.ErrorIs(t, err, member.ErrNotFound)
}

func TestContainer_PolicySelection(t *testing.T) {
	tests := []struct {
		name         string
		policy       discount.Kind
		price        int64
		wantDiscount int64
	}{
		{name: "fixed 10000", policy: discount.KindFixed, price: 10000, wantDiscount: 1000},
		{name: "rate 10000", policy: discount.KindRate, price: 10000, wantDiscount: 1000},
		{name: "fixed 20000", policy: discount.KindFixed, price: 20000, wantDiscount: 1000},
		{name: "rate 20000", policy: discount.KindRate, price: 20000, wantDiscount: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cfg := DefaultConfig()
			cfg.DiscountPolicy = tt.policy
			c := newContainer(t, cfg)

			require.NoError(t, c.MemberService().Join(ctx, member.New(1, "A", member.GradePriority)))
			o, err := c.OrderService().CreateOrder(ctx, 1, "book", tt.price)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, o.DiscountPrice)
		})
	}
}

func TestContainer_PolicyFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DiscountPolicy = discount.KindRate
	cfg.DiscountRate = "0.25"
	c := newContainer(t, cfg)

	assert.Equal(t, discount.NewRate(decimal.RequireFromString("0.25")), c.DiscountPolicy())

	cfg = DefaultConfig()
	cfg.FixedAmount = 500
	c = newContainer(t, cfg)

	assert.Equal(t, discount.NewFixed(500), c.DiscountPolicy())
}

func TestContainer_WithStoreFactory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMemberStore()
	require.NoError(t, store.Save(ctx, member.New(9, "seeded", member.GradeStandard)))

	c := newContainer(t, sharedConfig(), WithStoreFactory(func() member.Store { return store }))

	assert.Same(t, store, c.MemberStore())
	got, err := c.MemberService().FindMember(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "seeded", got.Name)
}

func TestContainer_WithStoreFactory_CalledOncePerSharedGraph(t *testing.T) {
	calls := 0
	c := newContainer(t, sharedConfig(), WithStoreFactory(func() member.Store {
		calls++
		return memory.NewMemberStore()
	}))

	c.MemberService()
	c.OrderService()
	c.MemberStore()

	assert.Equal(t, 1, calls)
}

func TestContainer_WithStoreFactory_CalledPerUnsharedAccess(t *testing.T) {
	calls := 0
	c := newContainer(t, unsharedConfig(), WithStoreFactory(func() member.Store {
		calls++
		return memory.NewMemberStore()
	}))

	c.MemberService()
	c.OrderService()

	assert.Equal(t, 2, calls)
}

func TestContainer_WithPolicyFactory(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, sharedConfig(), WithPolicyFactory(func() discount.Policy {
		return discount.NewFixed(250)
	}))

	require.NoError(t, c.MemberService().Join(ctx, member.New(1, "A", member.GradePriority)))
	o, err := c.OrderService().CreateOrder(ctx, 1, "book", 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(250), o.DiscountPrice)
}

func TestContainer_WithTelemetry(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, sharedConfig(),
		WithTelemetry(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider()),
	)

	instrumented, ok := c.OrderService().(*instrument.OrderService)
	require.True(t, ok)
	inner, ok := instrumented.Unwrap().(*order.DefaultService)
	require.True(t, ok)
	assert.Same(t, c.MemberStore(), inner.Store())

	require.NoError(t, c.MemberService().Join(ctx, member.New(1, "A", member.GradePriority)))
	o, err := c.OrderService().CreateOrder(ctx, 1, "book", 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), o.CalculatePrice())
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "unknown wiring",
			mutate:  func(c *Config) { c.Wiring = "prototype" },
			wantErr: ErrUnsupportedWiring,
		},
		{
			name:    "unknown policy",
			mutate:  func(c *Config) { c.DiscountPolicy = "stacked" },
			wantErr: discount.ErrUnsupportedKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := NewContainer(cfg, zap.NewNop())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	cfg := DefaultConfig()
	cfg.DiscountRate = "lots"
	_, err := NewContainer(cfg, zap.NewNop())
	require.Error(t, err)
}

func TestNewContainer_NilLogger(t *testing.T) {
	c, err := NewContainer(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, c.MemberService())
}

func TestNewContainer_LogsWiring(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := NewContainer(sharedConfig(), zap.New(core))
	require.NoError(t, err)

	ready := logs.FilterMessage("Container ready").All()
	require.Len(t, ready, 1)
	assert.Equal(t, "container", ready[0].LoggerName)
	assert.Equal(t, "shared", ready[0].ContextMap()["wiring"])
	assert.Equal(t, 1, logs.FilterMessage("Built member store").Len())
}
