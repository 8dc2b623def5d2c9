package seed

import (
	"context"
	"testing"
	"time"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/auth"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportAndDestroy(t *testing.T) {
	ctx := context.Background()
	users := accounts.NewMemoryStore()
	products := catalog.NewMemoryStore()
	ords := orders.NewMemoryStore(users)

	adminID, err := Import(ctx, users, products, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	admin, err := users.FindByID(ctx, adminID)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, auth.MatchPassword(admin.PasswordHash, "123456"))

	us, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, us, len(sampleUsers))

	ps, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, len(sampleProducts))
	assert.Equal(t, sampleProducts[0].Name, ps[0].Name)
	for _, p := range ps {
		assert.Equal(t, adminID, p.User)
		assert.Zero(t, p.NumReviews)
	}

	require.NoError(t, Destroy(ctx, ords, products, users))
	us, err = users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, us)
	ps, err = products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestImportTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	users := accounts.NewMemoryStore()
	products := catalog.NewMemoryStore()
	_, err := Import(ctx, users, products, time.Now())
	require.NoError(t, err)

	_, err = Import(ctx, users, products, time.Now())
	assert.Error(t, err)
}
