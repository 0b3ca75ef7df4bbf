// Package instrument decorates domain services with tracing and metrics.
package instrument

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/member-pricing/internal/domain/member"
	"github.com/xenking/member-pricing/internal/domain/order"
)

const scope = "github.com/xenking/member-pricing/internal/instrument"

var _ order.Service = (*OrderService)(nil)

// Telemetry holds the tracer and instruments shared by every instrumented
// order service built from it.
type Telemetry struct {
	tracer trace.Tracer

	created  metric.Int64Counter
	failed   metric.Int64Counter
	discount metric.Int64Counter
}

// NewTelemetry creates the order instruments from the given providers.
func NewTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*Telemetry, error) {
	meter := mp.Meter(scope)

	created, err := meter.Int64Counter("orders.created",
		metric.WithDescription("Orders priced successfully"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders.created counter")
	}
	failed, err := meter.Int64Counter("orders.failed",
		metric.WithDescription("Order pricing attempts that returned an error"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders.failed counter")
	}
	granted, err := meter.Int64Counter("orders.discount",
		metric.WithDescription("Total discount granted"),
		metric.WithUnit("{currency_unit}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders.discount counter")
	}

	return &Telemetry{
		tracer:   tp.Tracer(scope),
		created:  created,
		failed:   failed,
		discount: granted,
	}, nil
}

// Wrap decorates next so that every CreateOrder call is traced and counted.
func (t *Telemetry) Wrap(next order.Service) *OrderService {
	return &OrderService{next: next, t: t}
}

// OrderService is an order.Service decorated with tracing and metrics.
type OrderService struct {
	next order.Service
	t    *Telemetry
}

// CreateOrder implements order.Service.
func (s *OrderService) CreateOrder(ctx context.Context, memberID member.ID, itemName string, itemPrice int64) (order.Order, error) {
	ctx, span := s.t.tracer.Start(ctx, "CreateOrder", trace.WithAttributes(
		attribute.Int64("member.id", int64(memberID)),
		attribute.String("order.item", itemName),
		attribute.Int64("order.item_price", itemPrice),
	))
	defer span.End()

	o, err := s.next.CreateOrder(ctx, memberID, itemName, itemPrice)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.t.failed.Add(ctx, 1, metric.WithAttributes(
			attribute.Bool("member.not_found", errors.Is(err, member.ErrNotFound)),
		))
		zctx.From(ctx).Debug("Create order failed",
			zap.Int64("member_id", int64(memberID)),
			zap.Error(err),
		)
		return o, err
	}

	span.SetAttributes(attribute.Int64("order.discount", o.DiscountPrice))
	s.t.created.Add(ctx, 1)
	s.t.discount.Add(ctx, o.DiscountPrice)
	return o, nil
}

// Unwrap returns the decorated service.
func (s *OrderService) Unwrap() order.Service {
	return s.next
}
