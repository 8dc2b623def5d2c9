package catalog

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

// Store persists products as whole documents, reviews included.
type Store interface {
	Insert(ctx context.Context, p Product) error
	FindByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id, user_id, name, image, brand, category, description, price,
	count_in_stock, rating, num_reviews, reviews, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.User, &p.Name, &p.Image, &p.Brand, &p.Category, &p.Description, &p.Price,
		&p.CountInStock, &p.Rating, &p.NumReviews, &p.Reviews, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, apperr.NotFound("Product not found")
	}
	if err != nil {
		return Product{}, pkgerrors.Wrap(err, "scan product")
	}
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}
	return p, nil
}

func (r *Repo) Insert(ctx context.Context, p Product) error {
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, user_id, name, image, brand, category, description, price,
			count_in_stock, rating, num_reviews, reviews, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.User, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Price,
		p.CountInStock, p.Rating, p.NumReviews, p.Reviews, p.CreatedAt, p.UpdatedAt)
	return pkgerrors.Wrap(err, "insert product")
}

func (r *Repo) FindByID(ctx context.Context, id string) (Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list products")
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, pkgerrors.Wrap(rows.Err(), "list products")
}

// Save overwrites the stored document. Concurrent saves: last write wins.
func (r *Repo) Save(ctx context.Context, p Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$2, image=$3, brand=$4, category=$5, description=$6, price=$7,
			count_in_stock=$8, rating=$9, num_reviews=$10, reviews=$11, updated_at=$12
		WHERE id=$1`,
		p.ID, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Price,
		p.CountInStock, p.Rating, p.NumReviews, p.Reviews, p.UpdatedAt)
	if err != nil {
		return pkgerrors.Wrap(err, "save product")
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return pkgerrors.Wrap(err, "delete product")
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

func (r *Repo) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products`)
	return pkgerrors.Wrap(err, "delete products")
}
