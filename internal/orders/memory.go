package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/apperr"
)

// Directory resolves order owners for views.
type Directory interface {
	FindByID(ctx context.Context, id string) (accounts.User, error)
}

type MemoryStore struct {
	Users Directory

	mu     sync.RWMutex
	orders map[string]Order
}

func NewMemoryStore(users Directory) *MemoryStore {
	return &MemoryStore{Users: users, orders: map[string]Order{}}
}

func clone(o Order) Order {
	o.OrderItems = append([]OrderItem{}, o.OrderItems...)
	if o.PaymentResult != nil {
		pr := *o.PaymentResult
		o.PaymentResult = &pr
	}
	return o
}

func (m *MemoryStore) Insert(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = clone(o)
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return Order{}, apperr.NotFound("Order not found")
	}
	return clone(o), nil
}

func (m *MemoryStore) FindView(ctx context.Context, id string) (OrderView, error) {
	o, err := m.FindByID(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{Order: o, User: m.owner(ctx, o.User, true)}, nil
}

func (m *MemoryStore) SaveFulfillment(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.orders[o.ID]
	if !ok {
		return apperr.NotFound("Order not found")
	}
	cur.IsPaid, cur.PaidAt, cur.PaymentResult = o.IsPaid, o.PaidAt, o.PaymentResult
	cur.IsDelivered, cur.DeliveredAt = o.IsDelivered, o.DeliveredAt
	cur.UpdatedAt = o.UpdatedAt
	m.orders[o.ID] = clone(cur)
	return nil
}

func (m *MemoryStore) ListByUser(_ context.Context, userID string) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Order{}
	for _, o := range m.orders {
		if o.User == userID {
			out = append(out, clone(o))
		}
	}
	sortOrders(out)
	return out, nil
}

func (m *MemoryStore) ListViews(ctx context.Context) ([]OrderView, error) {
	m.mu.RLock()
	all := make([]Order, 0, len(m.orders))
	for _, o := range m.orders {
		all = append(all, clone(o))
	}
	m.mu.RUnlock()
	sortOrders(all)

	out := make([]OrderView, 0, len(all))
	for _, o := range all {
		out = append(out, OrderView{Order: o, User: m.owner(ctx, o.User, false)})
	}
	return out, nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = map[string]Order{}
	return nil
}

// owner mirrors the LEFT JOIN of the SQL store: a missing user yields an
// owner with only the id set.
func (m *MemoryStore) owner(ctx context.Context, id string, withEmail bool) Owner {
	ow := Owner{ID: id}
	if m.Users == nil {
		return ow
	}
	u, err := m.Users.FindByID(ctx, id)
	if err != nil {
		return ow
	}
	ow.Name = u.Name
	if withEmail {
		ow.Email = u.Email
	}
	return ow
}

func sortOrders(xs []Order) {
	sort.Slice(xs, func(i, j int) bool {
		if !xs[i].CreatedAt.Equal(xs[j].CreatedAt) {
			return xs[i].CreatedAt.Before(xs[j].CreatedAt)
		}
		return xs[i].ID < xs[j].ID
	})
}
