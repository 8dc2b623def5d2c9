package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

// Nested documents (reviews, order items, shipping address, payment result)
// live in JSONB columns so each entity is loaded and saved as one document.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	name           TEXT NOT NULL,
	image          TEXT NOT NULL DEFAULT '',
	brand          TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	price          DOUBLE PRECISION NOT NULL DEFAULT 0,
	count_in_stock INT NOT NULL DEFAULT 0,
	rating         DOUBLE PRECISION NOT NULL DEFAULT 0,
	num_reviews    INT NOT NULL DEFAULT 0,
	reviews        JSONB NOT NULL DEFAULT '[]',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	order_items      JSONB NOT NULL,
	shipping_address JSONB NOT NULL,
	payment_method   TEXT NOT NULL,
	payment_result   JSONB,
	items_price      DOUBLE PRECISION NOT NULL DEFAULT 0,
	tax_price        DOUBLE PRECISION NOT NULL DEFAULT 0,
	shipping_price   DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_price      DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_paid          BOOLEAN NOT NULL DEFAULT FALSE,
	paid_at          TIMESTAMPTZ,
	is_delivered     BOOLEAN NOT NULL DEFAULT FALSE,
	delivered_at     TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id);
`

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return pkgerrors.Wrap(err, "migrate")
	}
	return nil
}

// IsUniqueViolation reports a duplicate key error (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
