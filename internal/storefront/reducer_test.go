package storefront

import (
	"testing"

	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLifecycle(t *testing.T) {
	s := State{}
	products := []catalog.Product{{ID: "p1", Name: "Camera"}}

	s = Reduce(s, Requested{Resource: ProductList})
	assert.Equal(t, Loading, s.ProductList.Status)

	s = Reduce(s, Succeeded{Resource: ProductList, Data: products})
	assert.Equal(t, Success, s.ProductList.Status)
	assert.Equal(t, products, s.ProductList.Data)
	assert.Empty(t, s.ProductList.Error)

	s = Reduce(s, Requested{Resource: ProductList})
	s = Reduce(s, Failed{Resource: ProductList, Err: "boom"})
	assert.Equal(t, Errored, s.ProductList.Status)
	assert.Equal(t, "boom", s.ProductList.Error)

	s = Reduce(s, Reset{Resource: ProductList})
	assert.Equal(t, Request[[]catalog.Product]{}, s.ProductList)
}

func TestBranchesAreIndependent(t *testing.T) {
	s := Reduce(State{}, Requested{Resource: OrderPay})
	assert.Equal(t, Loading, s.OrderPay.Status)
	assert.Equal(t, Idle, s.OrderDeliver.Status)
	assert.Equal(t, Idle, s.OrderDetails.Status)
}

func TestSucceededWithWrongDataIsIgnored(t *testing.T) {
	s := Reduce(State{}, Requested{Resource: ProductDetails})
	next := Reduce(s, Succeeded{Resource: ProductDetails, Data: "not a product"})
	assert.Equal(t, s, next)
}

func TestRegisterAndProfileUpdateLogIn(t *testing.T) {
	u := &UserInfo{ID: "u1", Name: "John", Token: "t1"}
	s := Reduce(State{}, Succeeded{Resource: UserRegister, Data: u})
	assert.Same(t, u, s.UserRegister.Data)
	assert.Same(t, u, s.UserInfo())

	renamed := &UserInfo{ID: "u1", Name: "Johnny", Token: "t2"}
	s = Reduce(s, Succeeded{Resource: UserUpdateProfile, Data: renamed})
	assert.Equal(t, "Johnny", s.UserInfo().Name)
}

func TestCartItemAddedUpserts(t *testing.T) {
	s := State{Cart: emptyCart()}
	s = Reduce(s, CartItemAdded{Item: CartItem{Product: "p1", Name: "Camera", Price: 100, Qty: 1}})
	s = Reduce(s, CartItemAdded{Item: CartItem{Product: "p2", Name: "Mouse", Price: 20, Qty: 2}})
	s = Reduce(s, CartItemAdded{Item: CartItem{Product: "p1", Name: "Camera", Price: 100, Qty: 3}})

	require.Len(t, s.Cart.CartItems, 2)
	assert.Equal(t, "p1", s.Cart.CartItems[0].Product)
	assert.Equal(t, 3, s.Cart.CartItems[0].Qty)
	assert.InDelta(t, 340.0, s.Cart.ItemsPrice(), 1e-9)

	s = Reduce(s, CartItemRemoved{Product: "p1"})
	require.Len(t, s.Cart.CartItems, 1)
	assert.Equal(t, "p2", s.Cart.CartItems[0].Product)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := State{Cart: emptyCart()}
	before = Reduce(before, CartItemAdded{Item: CartItem{Product: "p1", Qty: 1}})
	snapshot := append([]CartItem(nil), before.Cart.CartItems...)

	_ = Reduce(before, CartItemAdded{Item: CartItem{Product: "p1", Qty: 5}})
	_ = Reduce(before, CartItemRemoved{Product: "p1"})

	assert.Equal(t, snapshot, before.Cart.CartItems)
}

func TestCheckoutDetails(t *testing.T) {
	addr := orders.ShippingAddress{Address: "1 Main St", City: "Boston", PostalCode: "02101", Country: "USA"}
	s := Reduce(State{Cart: emptyCart()}, ShippingAddressSaved{Address: addr})
	s = Reduce(s, PaymentMethodSaved{Method: "Stripe"})
	assert.Equal(t, addr, s.Cart.ShippingAddress)
	assert.Equal(t, "Stripe", s.Cart.PaymentMethod)

	s = Reduce(s, CartItemAdded{Item: CartItem{Product: "p1", Qty: 1}})
	s = Reduce(s, CartCleared{})
	assert.Empty(t, s.Cart.CartItems)
	assert.Equal(t, addr, s.Cart.ShippingAddress)
}

func TestLoggedOutClearsUserBranches(t *testing.T) {
	s := State{Cart: emptyCart()}
	s = Reduce(s, Succeeded{Resource: UserLogin, Data: &UserInfo{ID: "u1"}})
	s = Reduce(s, Succeeded{Resource: OrderMyList, Data: []orders.Order{{ID: "o1"}}})
	s = Reduce(s, Succeeded{Resource: ProductList, Data: []catalog.Product{{ID: "p1"}}})
	s = Reduce(s, CartItemAdded{Item: CartItem{Product: "p1", Qty: 1}})

	s = Reduce(s, LoggedOut{})
	assert.Nil(t, s.UserInfo())
	assert.Equal(t, Idle, s.OrderMyList.Status)
	assert.Empty(t, s.Cart.CartItems)
	assert.Equal(t, DefaultPaymentMethod, s.Cart.PaymentMethod)
	assert.Len(t, s.ProductList.Data, 1, "catalog survives logout")
}

func TestResourceNames(t *testing.T) {
	assert.Equal(t, "productReviewCreate", ProductReviewCreate.String())
	assert.Equal(t, "orderDeliver", OrderDeliver.String())
	assert.Equal(t, "unknown", Resource(99).String())
	for r := ProductList; r <= OrderDeliver; r++ {
		s := State{}
		assert.NotNil(t, s.branch(r), r.String())
	}
}

func TestStatusNames(t *testing.T) {
	for st, want := range map[Status]string{Idle: "idle", Loading: "loading", Success: "success", Errored: "error"} {
		assert.Equal(t, want, st.String())
	}
}
