package accounts

import (
	"context"
	"testing"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct{ issued []string }

func (s *stubTokens) Issue(userID string) (string, error) {
	s.issued = append(s.issued, userID)
	return "tok-" + userID, nil
}

func newService() (*Service, *MemoryStore, *stubTokens) {
	store := NewMemoryStore()
	tokens := &stubTokens{}
	return NewService(store, tokens), store, tokens
}

func TestRegister(t *testing.T) {
	svc, _, tokens := newService()
	ctx := context.Background()

	u, tok, err := svc.Register(ctx, "John Doe", " John@Example.com ", "123456")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "john@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "123456", u.PasswordHash)
	assert.Equal(t, "tok-"+u.ID, tok)
	assert.Equal(t, []string{u.ID}, tokens.issued)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store, _ := newService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "John", "john@example.com", "123456")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Johnny", "JOHN@example.com", "abcdef")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "User already exists", apperr.Message(err))

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuthenticateSameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, _, err := svc.Register(ctx, "Jane", "jane@example.com", "123456")
	require.NoError(t, err)

	_, _, errBadPass := svc.Authenticate(ctx, "jane@example.com", "wrong")
	_, _, errNoUser := svc.Authenticate(ctx, "nobody@example.com", "123456")

	for _, err := range []error{errBadPass, errNoUser} {
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
		assert.Equal(t, "Invalid email or password", apperr.Message(err))
	}
	assert.Equal(t, apperr.Stack(errBadPass), apperr.Stack(errNoUser))
}

func TestAuthenticateIssuesToken(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	reg, _, err := svc.Register(ctx, "Jane", "jane@example.com", "123456")
	require.NoError(t, err)

	u, tok, err := svc.Authenticate(ctx, "Jane@Example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.Equal(t, "tok-"+reg.ID, tok)
}

func TestUpdateSelfPartial(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	reg, _, err := svc.Register(ctx, "Jane", "jane@example.com", "123456")
	require.NoError(t, err)
	yes := true

	u, tok, err := svc.UpdateSelf(ctx, reg.ID, Patch{Name: "Jane Roe", IsAdmin: &yes})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", u.Name)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, reg.PasswordHash, u.PasswordHash)
	assert.NotEmpty(t, tok)

	_, _, err = svc.UpdateSelf(ctx, reg.ID, Patch{Password: "newpass"})
	require.NoError(t, err)
	_, _, err = svc.Authenticate(ctx, "jane@example.com", "newpass")
	assert.NoError(t, err)
}

func TestUpdateSelfEmailTaken(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, _, err := svc.Register(ctx, "A", "a@example.com", "123456")
	require.NoError(t, err)
	b, _, err := svc.Register(ctx, "B", "b@example.com", "123456")
	require.NoError(t, err)

	_, _, err = svc.UpdateSelf(ctx, b.ID, Patch{Email: "a@example.com"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestUpdateByIDChangesAdminFlag(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	reg, _, err := svc.Register(ctx, "Jane", "jane@example.com", "123456")
	require.NoError(t, err)
	yes := true

	u, err := svc.UpdateByID(ctx, reg.ID, Patch{IsAdmin: &yes})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	u, err = svc.UpdateByID(ctx, reg.ID, Patch{Name: "Janet"})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin, "absent flag keeps the stored value")
	assert.Equal(t, "Janet", u.Name)
}

func TestUpdateByIDMissing(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.UpdateByID(context.Background(), "missing", Patch{Name: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDelete(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	reg, _, err := svc.Register(ctx, "Jane", "jane@example.com", "123456")
	require.NoError(t, err)

	msg, err := svc.Delete(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgUserDeleted, msg)

	_, err = svc.Get(ctx, reg.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.Delete(ctx, reg.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeleteAdminIsKept(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	reg, _, err := svc.Register(ctx, "Admin", "admin@example.com", "123456")
	require.NoError(t, err)
	yes := true
	_, err = svc.UpdateByID(ctx, reg.ID, Patch{IsAdmin: &yes})
	require.NoError(t, err)

	msg, err := svc.Delete(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgAdminNotDeleted, msg)

	u, err := svc.Get(ctx, reg.ID)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}
