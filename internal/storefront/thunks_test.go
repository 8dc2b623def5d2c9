package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/auth"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/httpx"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shop struct {
	actions  *Actions
	storage  *MemoryStorage
	accounts *accounts.Service
	catalog  *catalog.Service
}

func newShop(t *testing.T) *shop {
	t.Helper()
	users := accounts.NewMemoryStore()
	tokens := auth.NewIssuer("test-secret", time.Hour)
	api := &httpx.API{
		Accounts:  accounts.NewService(users, tokens),
		Catalog:   catalog.NewService(catalog.NewMemoryStore(), nil),
		Orders:    orders.NewService(orders.NewMemoryStore(users), nil, "test"),
		Tokens:    tokens,
		UploadDir: t.TempDir(),
	}
	r := chi.NewRouter()
	api.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	storage := NewMemoryStorage()
	store, err := NewStore(storage)
	require.NoError(t, err)
	return &shop{
		actions:  &Actions{Store: store, Client: NewClient(srv.URL)},
		storage:  storage,
		accounts: api.Accounts,
		catalog:  api.Catalog,
	}
}

func (s *shop) seedProduct(t *testing.T, name string, price float64) catalog.Product {
	t.Helper()
	ctx := context.Background()
	p, err := s.catalog.Create(ctx, "admin")
	require.NoError(t, err)
	p, err = s.catalog.Update(ctx, p.ID, catalog.Fields{Name: name, Price: price, Image: "/images/x.jpg", CountInStock: 5})
	require.NoError(t, err)
	return p
}

func TestLoginFailureLandsInBranch(t *testing.T) {
	sh := newShop(t)
	err := sh.actions.Login(context.Background(), "ghost@example.com", "nope")
	require.Error(t, err)

	st := sh.actions.Store.State()
	assert.Equal(t, Errored, st.UserLogin.Status)
	assert.Equal(t, "Invalid email or password", st.UserLogin.Error)
	assert.Nil(t, st.UserInfo())
	_, ok, _ := sh.storage.GetItem(KeyUserInfo)
	assert.False(t, ok)
}

func TestCheckoutFlow(t *testing.T) {
	sh := newShop(t)
	ctx := context.Background()
	camera := sh.seedProduct(t, "Camera", 100)
	mouse := sh.seedProduct(t, "Mouse", 25)

	require.NoError(t, sh.actions.Register(ctx, "John", "john@example.com", "secret123"))
	st := sh.actions.Store.State()
	require.NotNil(t, st.UserInfo())
	assert.NotEmpty(t, st.UserInfo().Token)
	_, ok, _ := sh.storage.GetItem(KeyUserInfo)
	assert.True(t, ok)

	require.NoError(t, sh.actions.ListProducts(ctx))
	assert.Len(t, sh.actions.Store.State().ProductList.Data, 2)

	require.NoError(t, sh.actions.AddToCart(ctx, camera.ID, 1))
	require.NoError(t, sh.actions.AddToCart(ctx, mouse.ID, 1))
	require.NoError(t, sh.actions.AddToCart(ctx, mouse.ID, 2))
	require.NoError(t, sh.actions.SaveShippingAddress(orders.ShippingAddress{Address: "1 Main St", City: "Boston", PostalCode: "02101", Country: "USA"}))
	require.NoError(t, sh.actions.SavePaymentMethod("PayPal"))

	cart := sh.actions.Store.State().Cart
	require.Len(t, cart.CartItems, 2)
	assert.Equal(t, "Mouse", cart.CartItems[1].Name)
	assert.Equal(t, 5, cart.CartItems[1].CountInStock)
	assert.InDelta(t, 150.0, cart.ItemsPrice(), 1e-9)

	require.NoError(t, sh.actions.CreateOrder(ctx, 15, 0))
	st = sh.actions.Store.State()
	assert.Equal(t, Success, st.OrderCreate.Status)
	order := st.OrderCreate.Data
	assert.InDelta(t, 165.0, order.TotalPrice, 1e-9)
	assert.Empty(t, st.Cart.CartItems)
	_, ok, _ = sh.storage.GetItem(KeyCartItems)
	assert.False(t, ok)

	require.NoError(t, sh.actions.PayOrder(ctx, order.ID, orders.PaymentResult{ID: "PAY-1", Status: "COMPLETED", EmailAddress: "john@example.com"}))
	assert.True(t, sh.actions.Store.State().OrderPay.Data.IsPaid)

	require.NoError(t, sh.actions.OrderDetails(ctx, order.ID))
	details := sh.actions.Store.State().OrderDetails.Data
	assert.Equal(t, "John", details.User.Name)
	assert.True(t, details.IsPaid)

	require.NoError(t, sh.actions.MyOrders(ctx))
	assert.Len(t, sh.actions.Store.State().OrderMyList.Data, 1)

	require.NoError(t, sh.actions.Logout())
	st = sh.actions.Store.State()
	assert.Nil(t, st.UserInfo())
	assert.Equal(t, Idle, st.OrderMyList.Status)
}

func TestEmptyCartOrderKeepsCart(t *testing.T) {
	sh := newShop(t)
	ctx := context.Background()
	require.NoError(t, sh.actions.Register(ctx, "John", "john@example.com", "secret123"))
	require.NoError(t, sh.actions.SaveShippingAddress(orders.ShippingAddress{Address: "1 Main St", City: "Boston", PostalCode: "02101", Country: "USA"}))

	err := sh.actions.CreateOrder(ctx, 0, 0)
	require.Error(t, err)
	st := sh.actions.Store.State()
	assert.Equal(t, Errored, st.OrderCreate.Status)
	assert.Equal(t, "No order items", st.OrderCreate.Error)
}

func TestAdminActions(t *testing.T) {
	sh := newShop(t)
	ctx := context.Background()
	require.NoError(t, sh.actions.Register(ctx, "Admin", "admin@example.com", "secret123"))
	adminID := sh.actions.Store.State().UserInfo().ID
	yes := true
	_, err := sh.accounts.UpdateByID(ctx, adminID, accounts.Patch{IsAdmin: &yes})
	require.NoError(t, err)

	require.NoError(t, sh.actions.CreateProduct(ctx))
	created := sh.actions.Store.State().ProductCreate.Data
	assert.Equal(t, "Sample product", created.Name)

	require.NoError(t, sh.actions.UpdateProduct(ctx, created.ID, ProductInput{Name: "Shoe", Price: 49.99, CountInStock: 3}))
	assert.Equal(t, "Shoe", sh.actions.Store.State().ProductUpdate.Data.Name)

	require.NoError(t, sh.actions.CreateReview(ctx, created.ID, 5, "great"))
	assert.Equal(t, catalog.MsgReviewAdded, sh.actions.Store.State().ProductReviewCreate.Data)

	require.NoError(t, sh.actions.ListUsers(ctx))
	assert.Len(t, sh.actions.Store.State().UserList.Data, 1)

	require.NoError(t, sh.actions.DeleteUser(ctx, adminID))
	assert.Equal(t, accounts.MsgAdminNotDeleted, sh.actions.Store.State().UserDelete.Data)

	john, _, err := sh.accounts.Register(ctx, "John", "john@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, sh.actions.UserDetails(ctx, john.ID))
	assert.Equal(t, "john@example.com", sh.actions.Store.State().UserDetails.Data.Email)

	require.NoError(t, sh.actions.UserDetails(ctx, "profile"))
	assert.Equal(t, "admin@example.com", sh.actions.Store.State().UserDetails.Data.Email)

	require.NoError(t, sh.actions.DeleteProduct(ctx, created.ID))
	assert.Equal(t, catalog.MsgProductDeleted, sh.actions.Store.State().ProductDelete.Data)
}

func TestClientReportsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).ListProducts(context.Background())
	require.Error(t, err)
	assert.NotEmpty(t, Message(err))
}
