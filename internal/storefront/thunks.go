package storefront

import (
	"context"

	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/orders"
)

// Actions runs API calls against a Store: each call dispatches Requested, then
// Succeeded or Failed. A failed call is also returned to the caller.
type Actions struct {
	Store  *Store
	Client *Client
}

func run[T any](ctx context.Context, s *Store, r Resource, call func(context.Context) (T, error)) (T, error) {
	if err := s.Dispatch(Requested{Resource: r}); err != nil {
		var zero T
		return zero, err
	}
	v, err := call(ctx)
	if err != nil {
		_ = s.Dispatch(Failed{Resource: r, Err: Message(err)})
		return v, err
	}
	return v, s.Dispatch(Succeeded{Resource: r, Data: v})
}

func (a *Actions) token() string {
	if u := a.Store.State().UserInfo(); u != nil {
		return u.Token
	}
	return ""
}

func (a *Actions) ListProducts(ctx context.Context) error {
	_, err := run(ctx, a.Store, ProductList, a.Client.ListProducts)
	return err
}

func (a *Actions) ProductDetails(ctx context.Context, id string) error {
	_, err := run(ctx, a.Store, ProductDetails, func(ctx context.Context) (catalog.Product, error) {
		return a.Client.GetProduct(ctx, id)
	})
	return err
}

func (a *Actions) DeleteProduct(ctx context.Context, id string) error {
	_, err := run(ctx, a.Store, ProductDelete, func(ctx context.Context) (string, error) {
		return a.Client.DeleteProduct(ctx, a.token(), id)
	})
	return err
}

func (a *Actions) CreateProduct(ctx context.Context) error {
	_, err := run(ctx, a.Store, ProductCreate, func(ctx context.Context) (catalog.Product, error) {
		return a.Client.CreateProduct(ctx, a.token())
	})
	return err
}

func (a *Actions) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	_, err := run(ctx, a.Store, ProductUpdate, func(ctx context.Context) (catalog.Product, error) {
		return a.Client.UpdateProduct(ctx, a.token(), id, in)
	})
	return err
}

func (a *Actions) CreateReview(ctx context.Context, productID string, rating int, comment string) error {
	_, err := run(ctx, a.Store, ProductReviewCreate, func(ctx context.Context) (string, error) {
		return a.Client.CreateReview(ctx, a.token(), productID, rating, comment)
	})
	return err
}

// AddToCart snapshots the product as it is now; a repeat call for the same
// product sets its quantity.
func (a *Actions) AddToCart(ctx context.Context, productID string, qty int) error {
	p, err := a.Client.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	return a.Store.Dispatch(CartItemAdded{Item: CartItem{
		Product:      p.ID,
		Name:         p.Name,
		Image:        p.Image,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		Qty:          qty,
	}})
}

func (a *Actions) RemoveFromCart(productID string) error {
	return a.Store.Dispatch(CartItemRemoved{Product: productID})
}

func (a *Actions) SaveShippingAddress(addr orders.ShippingAddress) error {
	return a.Store.Dispatch(ShippingAddressSaved{Address: addr})
}

func (a *Actions) SavePaymentMethod(method string) error {
	return a.Store.Dispatch(PaymentMethodSaved{Method: method})
}

func (a *Actions) Login(ctx context.Context, email, password string) error {
	_, err := run(ctx, a.Store, UserLogin, func(ctx context.Context) (*UserInfo, error) {
		u, err := a.Client.Login(ctx, email, password)
		return &u, err
	})
	return err
}

func (a *Actions) Register(ctx context.Context, name, email, password string) error {
	_, err := run(ctx, a.Store, UserRegister, func(ctx context.Context) (*UserInfo, error) {
		u, err := a.Client.Register(ctx, name, email, password)
		return &u, err
	})
	return err
}

func (a *Actions) Logout() error {
	return a.Store.Dispatch(LoggedOut{})
}

func (a *Actions) UserDetails(ctx context.Context, id string) error {
	_, err := run(ctx, a.Store, UserDetails, func(ctx context.Context) (UserInfo, error) {
		if id == "" || id == "profile" {
			return a.Client.Profile(ctx, a.token())
		}
		return a.Client.GetUser(ctx, a.token(), id)
	})
	return err
}

// UpdateProfile keeps the current token when the API answers without one.
func (a *Actions) UpdateProfile(ctx context.Context, in ProfileInput) error {
	_, err := run(ctx, a.Store, UserUpdateProfile, func(ctx context.Context) (*UserInfo, error) {
		tok := a.token()
		u, err := a.Client.UpdateProfile(ctx, tok, in)
		if u.Token == "" {
			u.Token = tok
		}
		return &u, err
	})
	return err
}

func (a *Actions) ListUsers(ctx context.Context) error {
	_, err := run(ctx, a.Store, UserList, func(ctx context.Context) ([]UserInfo, error) {
		return a.Client.ListUsers(ctx, a.token())
	})
	return err
}

func (a *Actions) DeleteUser(ctx context.Context, id string) error {
	_, err := run(ctx, a.Store, UserDelete, func(ctx context.Context) (string, error) {
		return a.Client.DeleteUser(ctx, a.token(), id)
	})
	return err
}

func (a *Actions) UpdateUser(ctx context.Context, id string, in UserInput) error {
	_, err := run(ctx, a.Store, UserUpdate, func(ctx context.Context) (UserInfo, error) {
		return a.Client.UpdateUser(ctx, a.token(), id, in)
	})
	return err
}

// CreateOrder submits the cart. Totals are computed here from the cart
// snapshot; the cart is cleared once the order exists.
func (a *Actions) CreateOrder(ctx context.Context, taxPrice, shippingPrice float64) error {
	cart := a.Store.State().Cart
	items := make([]orders.OrderItem, 0, len(cart.CartItems))
	for _, it := range cart.CartItems {
		items = append(items, orders.OrderItem{
			Product: it.Product,
			Name:    it.Name,
			Qty:     it.Qty,
			Price:   it.Price,
			Image:   it.Image,
		})
	}
	itemsPrice := cart.ItemsPrice()
	in := orders.Input{
		OrderItems:      items,
		ShippingAddress: cart.ShippingAddress,
		PaymentMethod:   cart.PaymentMethod,
		ItemsPrice:      itemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      itemsPrice + taxPrice + shippingPrice,
	}
	_, err := run(ctx, a.Store, OrderCreate, func(ctx context.Context) (orders.Order, error) {
		return a.Client.CreateOrder(ctx, a.token(), in)
	})
	if err != nil {
		return err
	}
	return a.Store.Dispatch(CartCleared{})
}

func (a *Actions) OrderDetails(ctx context.Context, id string) error {
	_, err := run(ctx, a.Store, OrderDetails, func(ctx context.Context) (orders.OrderView, error) {
		return a.Client.GetOrder(ctx, a.token(), id)
	})
	return err
}

func (a *Actions) PayOrder(ctx context.Context, id string, res orders.PaymentResult) error {
	_, err := run(ctx, a.Store, OrderPay, func(ctx context.Context) (orders.Order, error) {
		return a.Client.PayOrder(ctx, a.token(), id, res)
	})
	return err
}

func (a *Actions) DeliverOrder(ctx context.Context, id string) error {
	_, err := run(ctx, a.Store, OrderDeliver, func(ctx context.Context) (orders.Order, error) {
		return a.Client.DeliverOrder(ctx, a.token(), id)
	})
	return err
}

func (a *Actions) MyOrders(ctx context.Context) error {
	_, err := run(ctx, a.Store, OrderMyList, func(ctx context.Context) ([]orders.Order, error) {
		return a.Client.MyOrders(ctx, a.token())
	})
	return err
}

func (a *Actions) ListOrders(ctx context.Context) error {
	_, err := run(ctx, a.Store, OrderList, func(ctx context.Context) ([]orders.OrderView, error) {
		return a.Client.ListOrders(ctx, a.token())
	})
	return err
}
