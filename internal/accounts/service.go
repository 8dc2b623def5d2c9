package accounts

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/ariefcatur/go-storefront/internal/auth"
	"github.com/google/uuid"
)

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Service struct {
	Store  Store
	Tokens TokenIssuer
	Now    func() time.Time
}

func NewService(store Store, tokens TokenIssuer) *Service {
	return &Service{Store: store, Tokens: tokens, Now: time.Now}
}

// errBadCredentials is shared by every failed login so the responses, stack
// included, cannot tell an unknown email from a wrong password.
var errBadCredentials = apperr.Unauthorized("Invalid email or password")

// decoyHash is compared against when the email is unknown so both failures
// pay for one bcrypt comparison.
var decoyHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		panic(err)
	}
	return h
})

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates a non-admin user and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, string, error) {
	email = normalizeEmail(email)

	_, err := s.Store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return User{}, "", apperr.Conflict("User already exists")
	case !apperr.Is(err, apperr.KindNotFound):
		return User{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, "", err
	}
	now := s.Now().UTC()
	u := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Insert(ctx, u); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return User{}, "", err
		}
		slog.ErrorContext(ctx, "register: insert user", "email", email, "err", err)
		return User{}, "", apperr.Validation("Invalid user data")
	}
	return s.withToken(u)
}

// Authenticate answers the same Unauthorized error for an unknown email and a
// wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.Store.FindByEmail(ctx, normalizeEmail(email))
	known := err == nil
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return User{}, "", err
	}
	hash := u.PasswordHash
	if !known {
		hash = decoyHash()
	}
	if !auth.MatchPassword(hash, password) || !known {
		return User{}, "", errBadCredentials
	}
	return s.withToken(u)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Store.List(ctx)
}

// UpdateSelf applies a profile patch. IsAdmin is ignored here.
func (s *Service) UpdateSelf(ctx context.Context, id string, p Patch) (User, string, error) {
	p.IsAdmin = nil
	u, err := s.apply(ctx, id, p)
	if err != nil {
		return User{}, "", err
	}
	return s.withToken(u)
}

func (s *Service) UpdateByID(ctx context.Context, id string, p Patch) (User, error) {
	return s.apply(ctx, id, p)
}

// Delete removes a non-admin user. Admin targets are kept and the call still
// answers with a message rather than an error.
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u.IsAdmin {
		return MsgAdminNotDeleted, nil
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return "", err
	}
	return MsgUserDeleted, nil
}

func (s *Service) apply(ctx context.Context, id string, p Patch) (User, error) {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		u.Name = name
	}
	if email := normalizeEmail(p.Email); email != "" {
		u.Email = email
	}
	if p.Password != "" {
		hash, err := auth.HashPassword(p.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	u.UpdatedAt = s.Now().UTC()
	if err := s.Store.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) withToken(u User) (User, string, error) {
	tok, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", err
	}
	return u, tok, nil
}
