package accounts

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/ariefcatur/go-storefront/internal/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

// Store persists users. Lookups that miss return an apperr NotFound.
type Store interface {
	Insert(ctx context.Context, u User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}

type Repo struct{ DB *pgxpool.Pool }

const userColumns = `id, name, email, password_hash, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return User{}, pkgerrors.Wrap(err, "scan user")
	}
	return u, nil
}

func (r *Repo) Insert(ctx context.Context, u User) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO users(id, name, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return apperr.Conflict("User already exists")
	}
	return pkgerrors.Wrap(err, "insert user")
}

func (r *Repo) FindByID(ctx context.Context, id string) (User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list users")
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, pkgerrors.Wrap(rows.Err(), "list users")
}

func (r *Repo) Update(ctx context.Context, u User) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE users SET name=$2, email=$3, password_hash=$4, is_admin=$5, updated_at=$6
		WHERE id=$1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin, u.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return apperr.Conflict("User already exists")
	}
	if err != nil {
		return pkgerrors.Wrap(err, "update user")
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return pkgerrors.Wrap(err, "delete user")
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// DeleteAll empties the collection; used by the seeder.
func (r *Repo) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users`)
	return pkgerrors.Wrap(err, "delete users")
}
