package orders

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

// Store persists orders. Views resolve the owning user for display.
type Store interface {
	Insert(ctx context.Context, o Order) error
	FindByID(ctx context.Context, id string) (Order, error)
	FindView(ctx context.Context, id string) (OrderView, error)
	SaveFulfillment(ctx context.Context, o Order) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListViews(ctx context.Context) ([]OrderView, error)
}

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `o.id, o.user_id, o.order_items, o.shipping_address, o.payment_method, o.payment_result,
	o.items_price, o.tax_price, o.shipping_price, o.total_price,
	o.is_paid, o.paid_at, o.is_delivered, o.delivered_at, o.created_at, o.updated_at`

func orderDest(o *Order) []any {
	return []any{&o.ID, &o.User, &o.OrderItems, &o.ShippingAddress, &o.PaymentMethod, &o.PaymentResult,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Order not found")
	}
	return pkgerrors.Wrap(err, "scan order")
}

func (r *Repo) Insert(ctx context.Context, o Order) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO orders(id, user_id, order_items, shipping_address, payment_method, payment_result,
			items_price, tax_price, shipping_price, total_price,
			is_paid, paid_at, is_delivered, delivered_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		o.ID, o.User, o.OrderItems, o.ShippingAddress, o.PaymentMethod, o.PaymentResult,
		o.ItemsPrice, o.TaxPrice, o.ShippingPrice, o.TotalPrice,
		o.IsPaid, o.PaidAt, o.IsDelivered, o.DeliveredAt, o.CreatedAt, o.UpdatedAt)
	return pkgerrors.Wrap(err, "insert order")
}

func (r *Repo) FindByID(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id=$1`, id).Scan(orderDest(&o)...)
	if err != nil {
		return Order{}, notFound(err)
	}
	return o, nil
}

func (r *Repo) FindView(ctx context.Context, id string) (OrderView, error) {
	var v OrderView
	dest := append(orderDest(&v.Order), &v.User.Name, &v.User.Email)
	err := r.DB.QueryRow(ctx, `
		SELECT `+orderColumns+`, COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM orders o LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id=$1`, id).Scan(dest...)
	if err != nil {
		return OrderView{}, notFound(err)
	}
	v.User.ID = v.Order.User
	return v, nil
}

// SaveFulfillment writes the mutable part of an order; the snapshot columns
// are never updated after insert.
func (r *Repo) SaveFulfillment(ctx context.Context, o Order) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET is_paid=$2, paid_at=$3, payment_result=$4, is_delivered=$5, delivered_at=$6, updated_at=$7
		WHERE id=$1`,
		o.ID, o.IsPaid, o.PaidAt, o.PaymentResult, o.IsDelivered, o.DeliveredAt, o.UpdatedAt)
	if err != nil {
		return pkgerrors.Wrap(err, "save order")
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("Order not found")
	}
	return nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.user_id=$1 ORDER BY o.created_at`, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list orders")
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(orderDest(&o)...); err != nil {
			return nil, pkgerrors.Wrap(err, "scan order")
		}
		out = append(out, o)
	}
	return out, pkgerrors.Wrap(rows.Err(), "list orders")
}

// ListViews returns every order with the owner's name resolved.
func (r *Repo) ListViews(ctx context.Context) ([]OrderView, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderColumns+`, COALESCE(u.name, '')
		FROM orders o LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list orders")
	}
	defer rows.Close()

	out := []OrderView{}
	for rows.Next() {
		var v OrderView
		if err := rows.Scan(append(orderDest(&v.Order), &v.User.Name)...); err != nil {
			return nil, pkgerrors.Wrap(err, "scan order")
		}
		v.User.ID = v.Order.User
		out = append(out, v)
	}
	return out, pkgerrors.Wrap(rows.Err(), "list orders")
}

func (r *Repo) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM orders`)
	return pkgerrors.Wrap(err, "delete orders")
}
