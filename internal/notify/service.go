// Package notify turns order lifecycle events into per-user notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Notification struct {
	EventID string    `json:"event_id"`
	Type    string    `json:"type"`
	OrderID string    `json:"order_id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderEvent is installed as the consumer handler.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	userID, msg, err := describe(env)
	if err != nil {
		return err
	}
	if msg == "" {
		return nil // not ours
	}

	won, err := redisx.Claim(ctx, s.Redis, fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID), redisx.TTLDedup)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	n := Notification{
		EventID: env.EventID,
		Type:    env.EventType,
		OrderID: env.CorrelationID,
		Message: msg,
		At:      env.OccurredAt,
	}
	if err := s.push(ctx, userID, n); err != nil {
		// release the claim so a redelivery can retry
		_ = s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)).Err()
		return err
	}
	slog.InfoContext(ctx, "notification queued", "user_id", userID, "order_id", n.OrderID, "type", n.Type)
	return nil
}

// Recent returns a user's newest notifications first.
func (s *Service) Recent(ctx context.Context, userID string) ([]Notification, error) {
	raw, err := s.Redis.LRange(ctx, fmt.Sprintf(redisx.KeyUserNotifications, userID), 0, redisx.MaxNotifications-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(raw))
	for _, r := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Service) push(ctx context.Context, userID string, n Notification) error {
	key := fmt.Sprintf(redisx.KeyUserNotifications, userID)
	_, err := s.Redis.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, key, kafkax.MustMarshal(n))
		p.LTrim(ctx, key, 0, redisx.MaxNotifications-1)
		p.Expire(ctx, key, redisx.TTLNotifications)
		return nil
	})
	return err
}

func describe(env orders.Envelope) (userID, msg string, err error) {
	switch env.EventType {
	case orders.EventOrderCreated:
		p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
		if err != nil {
			return "", "", err
		}
		return p.UserID, fmt.Sprintf("Order %s placed: %d item(s), total %.2f", p.OrderID, len(p.Items), p.TotalPrice), nil
	case orders.EventOrderPaid:
		p, err := kafkax.UnwrapPayload[orders.OrderPaidPayload](env.Payload)
		if err != nil {
			return "", "", err
		}
		return p.UserID, fmt.Sprintf("Payment received for order %s via %s", p.OrderID, p.PaymentMethod), nil
	case orders.EventOrderDelivered:
		p, err := kafkax.UnwrapPayload[orders.OrderDeliveredPayload](env.Payload)
		if err != nil {
			return "", "", err
		}
		return p.UserID, fmt.Sprintf("Order %s delivered", p.OrderID), nil
	default:
		return "", "", nil
	}
}
