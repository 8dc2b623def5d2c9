// Package storefront is the client side of the shop: a single state tree
// driven by a closed set of actions, a REST client for the API, and the
// persisted shopping cart.
package storefront

import (
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/orders"
)

// Status is the lifecycle of one request branch.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Errored
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Errored:
		return "error"
	default:
		return "idle"
	}
}

// Request is a branch that mirrors one server call.
type Request[T any] struct {
	Status Status
	Data   T
	Error  string
}

func (r *Request[T]) request() {
	r.Status = Loading
	r.Error = ""
}

func (r *Request[T]) succeed(data any) bool {
	d, ok := data.(T)
	if !ok {
		return false
	}
	r.Status = Success
	r.Data = d
	r.Error = ""
	return true
}

func (r *Request[T]) fail(msg string) {
	r.Status = Errored
	r.Error = msg
}

func (r *Request[T]) reset() { *r = Request[T]{} }

// UserInfo is what the API answers for login, register and profile calls.
type UserInfo struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

type CartItem struct {
	Product      string  `json:"product"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Qty          int     `json:"qty"`
}

const DefaultPaymentMethod = "PayPal"

// Cart is the only branch that outlives the process.
type Cart struct {
	CartItems       []CartItem             `json:"cartItems"`
	ShippingAddress orders.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// ItemsPrice sums price times quantity over the cart.
func (c Cart) ItemsPrice() float64 {
	var total float64
	for _, it := range c.CartItems {
		total += it.Price * float64(it.Qty)
	}
	return total
}

type State struct {
	ProductList         Request[[]catalog.Product]
	ProductDetails      Request[catalog.Product]
	ProductDelete       Request[string]
	ProductCreate       Request[catalog.Product]
	ProductUpdate       Request[catalog.Product]
	ProductReviewCreate Request[string]

	Cart Cart

	UserLogin         Request[*UserInfo]
	UserRegister      Request[*UserInfo]
	UserDetails       Request[UserInfo]
	UserUpdateProfile Request[*UserInfo]
	UserList          Request[[]UserInfo]
	UserDelete        Request[string]
	UserUpdate        Request[UserInfo]

	OrderCreate  Request[orders.Order]
	OrderDetails Request[orders.OrderView]
	OrderPay     Request[orders.Order]
	OrderMyList  Request[[]orders.Order]
	OrderList    Request[[]orders.OrderView]
	OrderDeliver Request[orders.Order]
}

// UserInfo is the logged-in user, or nil.
func (s State) UserInfo() *UserInfo { return s.UserLogin.Data }

// Resource names a request branch of State.
type Resource int

const (
	ProductList Resource = iota
	ProductDetails
	ProductDelete
	ProductCreate
	ProductUpdate
	ProductReviewCreate
	UserLogin
	UserRegister
	UserDetails
	UserUpdateProfile
	UserList
	UserDelete
	UserUpdate
	OrderCreate
	OrderDetails
	OrderPay
	OrderMyList
	OrderList
	OrderDeliver
)

var resourceNames = [...]string{
	ProductList:         "productList",
	ProductDetails:      "productDetails",
	ProductDelete:       "productDelete",
	ProductCreate:       "productCreate",
	ProductUpdate:       "productUpdate",
	ProductReviewCreate: "productReviewCreate",
	UserLogin:           "userLogin",
	UserRegister:        "userRegister",
	UserDetails:         "userDetails",
	UserUpdateProfile:   "userUpdateProfile",
	UserList:            "userList",
	UserDelete:          "userDelete",
	UserUpdate:          "userUpdate",
	OrderCreate:         "orderCreate",
	OrderDetails:        "orderDetails",
	OrderPay:            "orderPay",
	OrderMyList:         "orderMyList",
	OrderList:           "orderList",
	OrderDeliver:        "orderDeliver",
}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return "unknown"
	}
	return resourceNames[r]
}

type branch interface {
	request()
	succeed(data any) bool
	fail(msg string)
	reset()
}

func (s *State) branch(r Resource) branch {
	switch r {
	case ProductList:
		return &s.ProductList
	case ProductDetails:
		return &s.ProductDetails
	case ProductDelete:
		return &s.ProductDelete
	case ProductCreate:
		return &s.ProductCreate
	case ProductUpdate:
		return &s.ProductUpdate
	case ProductReviewCreate:
		return &s.ProductReviewCreate
	case UserLogin:
		return &s.UserLogin
	case UserRegister:
		return &s.UserRegister
	case UserDetails:
		return &s.UserDetails
	case UserUpdateProfile:
		return &s.UserUpdateProfile
	case UserList:
		return &s.UserList
	case UserDelete:
		return &s.UserDelete
	case UserUpdate:
		return &s.UserUpdate
	case OrderCreate:
		return &s.OrderCreate
	case OrderDetails:
		return &s.OrderDetails
	case OrderPay:
		return &s.OrderPay
	case OrderMyList:
		return &s.OrderMyList
	case OrderList:
		return &s.OrderList
	case OrderDeliver:
		return &s.OrderDeliver
	default:
		return nil
	}
}
