package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture records what the order service would have sent to Kafka.
type capture struct{ msgs []kafkago.Message }

func (c *capture) Publish(topic string, key, value []byte, headers ...kafkago.Header) {
	c.msgs = append(c.msgs, kafkago.Message{Topic: topic, Key: key, Value: value, Headers: headers})
}

func newService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return &Service{Redis: rdb, ServiceName: "notifier"}, mr
}

func lifecycle(t *testing.T) (*capture, string) {
	t.Helper()
	ctx := context.Background()
	pub := &capture{}
	svc := orders.NewService(orders.NewMemoryStore(nil), pub, "storefront-api")

	o, err := svc.Create(ctx, "u1", orders.Input{
		OrderItems:    []orders.OrderItem{{Product: "p1", Name: "Camera", Qty: 1, Price: 929.99}},
		PaymentMethod: "PayPal",
		TotalPrice:    929.99,
	})
	require.NoError(t, err)
	_, err = svc.MarkPaid(ctx, o.ID, orders.PaymentResult{ID: "PAY-1", Status: "COMPLETED"})
	require.NoError(t, err)
	_, err = svc.MarkDelivered(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, pub.msgs, 3)
	return pub, o.ID
}

func TestHandleOrderLifecycle(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	pub, orderID := lifecycle(t)

	for _, m := range pub.msgs {
		require.NoError(t, s.HandleOrderEvent(ctx, m))
	}

	got, err := s.Recent(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, orders.EventOrderDelivered, got[0].Type)
	assert.Equal(t, orders.EventOrderPaid, got[1].Type)
	assert.Equal(t, orders.EventOrderCreated, got[2].Type)
	assert.Equal(t, fmt.Sprintf("Order %s delivered", orderID), got[0].Message)
	assert.Equal(t, fmt.Sprintf("Payment received for order %s via PayPal", orderID), got[1].Message)
	assert.Equal(t, fmt.Sprintf("Order %s placed: 1 item(s), total 929.99", orderID), got[2].Message)
	for _, n := range got {
		assert.Equal(t, orderID, n.OrderID)
	}
}

func TestHandleIsIdempotentPerEvent(t *testing.T) {
	s, mr := newService(t)
	ctx := context.Background()
	pub, _ := lifecycle(t)

	require.NoError(t, s.HandleOrderEvent(ctx, pub.msgs[0]))
	require.NoError(t, s.HandleOrderEvent(ctx, pub.msgs[0]))

	got, err := s.Recent(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	key := fmt.Sprintf(redisx.KeyUserNotifications, "u1")
	assert.True(t, mr.Exists(key))
	assert.Greater(t, mr.TTL(key), time.Duration(0))
}

func TestHandleIgnoresUnknownEvents(t *testing.T) {
	s, _ := newService(t)

	err := s.HandleOrderEvent(context.Background(), kafkago.Message{
		Value: []byte(`{"event_id":"e1","event_type":"SomethingElse","payload":{}}`),
	})
	require.NoError(t, err)

	got, err := s.Recent(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHandleRejectsGarbage(t *testing.T) {
	s, _ := newService(t)

	assert.Error(t, s.HandleOrderEvent(context.Background(), kafkago.Message{Value: []byte("nope")}))
}

func TestFeedIsCapped(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < int(redisx.MaxNotifications)+5; i++ {
		require.NoError(t, s.push(ctx, "u1", Notification{EventID: fmt.Sprint(i)}))
	}
	got, err := s.Recent(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, int(redisx.MaxNotifications))
	assert.Equal(t, fmt.Sprint(int(redisx.MaxNotifications)+4), got[0].EventID)
}
