package orders

import (
	"context"
	"time"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Store    Store
	Events   Publisher // optional
	Producer string
	Now      func() time.Time
}

func NewService(store Store, events Publisher, producer string) *Service {
	return &Service{Store: store, Events: events, Producer: producer, Now: time.Now}
}

// Create persists the checkout snapshot exactly as supplied. Totals are not
// recomputed against the catalog.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Order, error) {
	if len(in.OrderItems) == 0 {
		return Order{}, apperr.Validation("No order items")
	}
	now := s.Now().UTC()
	o := Order{
		ID:              uuid.NewString(),
		User:            userID,
		OrderItems:      append([]OrderItem{}, in.OrderItems...),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ItemsPrice:      in.ItemsPrice,
		TaxPrice:        in.TaxPrice,
		ShippingPrice:   in.ShippingPrice,
		TotalPrice:      in.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Insert(ctx, o); err != nil {
		return Order{}, err
	}
	s.publish(ctx, EventOrderCreated, o.ID, OrderCreatedPayload{
		OrderID:    o.ID,
		UserID:     o.User,
		Items:      o.OrderItems,
		TotalPrice: o.TotalPrice,
	})
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (OrderView, error) {
	return s.Store.FindView(ctx, id)
}

// MarkPaid records the client-relayed payment confirmation without verifying it.
func (s *Service) MarkPaid(ctx context.Context, id string, res PaymentResult) (Order, error) {
	o, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	o.MarkPaid(res, s.Now().UTC())
	if err := s.Store.SaveFulfillment(ctx, o); err != nil {
		return Order{}, err
	}
	s.publish(ctx, EventOrderPaid, o.ID, OrderPaidPayload{
		OrderID:       o.ID,
		UserID:        o.User,
		PaidAt:        *o.PaidAt,
		PaymentMethod: o.PaymentMethod,
		PaymentResult: res,
	})
	return o, nil
}

func (s *Service) MarkDelivered(ctx context.Context, id string) (Order, error) {
	o, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	o.MarkDelivered(s.Now().UTC())
	if err := s.Store.SaveFulfillment(ctx, o); err != nil {
		return Order{}, err
	}
	s.publish(ctx, EventOrderDelivered, o.ID, OrderDeliveredPayload{
		OrderID:     o.ID,
		UserID:      o.User,
		DeliveredAt: *o.DeliveredAt,
	})
	return o, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Order, error) {
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]OrderView, error) {
	return s.Store.ListViews(ctx)
}

type traceKey struct{}

// WithTraceID tags ctx so published events carry the request id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func (s *Service) publish(ctx context.Context, eventType, orderID string, payload any) {
	if s.Events == nil {
		return
	}
	trace, _ := ctx.Value(traceKey{}).(string)
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    s.Now().UTC(),
		Producer:      s.Producer,
		TraceID:       trace,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.Events.Publish(topicFor(eventType), PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkax.EventHeaders(eventType, ev.EventVersion)...)
}
