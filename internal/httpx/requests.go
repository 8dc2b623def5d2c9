package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it against its tags.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return apperr.Validation("Invalid request body")
	}
	fe := ves[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return apperr.Validation(fmt.Sprintf("%s is required", field))
	case "email":
		return apperr.Validation(fmt.Sprintf("%s must be a valid email", field))
	case "min", "gte":
		return apperr.Validation(fmt.Sprintf("%s must be at least %s", field, fe.Param()))
	case "max", "lte":
		return apperr.Validation(fmt.Sprintf("%s must be at most %s", field, fe.Param()))
	default:
		return apperr.Validation(fmt.Sprintf("%s is invalid", field))
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

func (p profileRequest) patch() accounts.Patch {
	return accounts.Patch{Name: p.Name, Email: p.Email, Password: p.Password}
}

type adminUserRequest struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	IsAdmin *bool  `json:"isAdmin"`
}

func (p adminUserRequest) patch() accounts.Patch {
	return accounts.Patch{Name: p.Name, Email: p.Email, IsAdmin: p.IsAdmin}
}

type productRequest struct {
	Name         string  `json:"name" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
}

func (p productRequest) fields() catalog.Fields {
	return catalog.Fields{
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		Image:        p.Image,
		Brand:        p.Brand,
		Category:     p.Category,
		CountInStock: p.CountInStock,
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type orderItemRequest struct {
	Product string  `json:"product" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	Qty     int     `json:"qty" validate:"min=1"`
	Price   float64 `json:"price" validate:"gte=0"`
	Image   string  `json:"image"`
}

type shippingRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// orderRequest leaves an empty orderItems list to the order store, which
// owns the "No order items" rule.
type orderRequest struct {
	OrderItems      []orderItemRequest `json:"orderItems" validate:"dive"`
	ShippingAddress shippingRequest    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required"`
	ItemsPrice      float64            `json:"itemsPrice" validate:"gte=0"`
	TaxPrice        float64            `json:"taxPrice" validate:"gte=0"`
	ShippingPrice   float64            `json:"shippingPrice" validate:"gte=0"`
	TotalPrice      float64            `json:"totalPrice" validate:"gte=0"`
}

func (o orderRequest) input() orders.Input {
	items := make([]orders.OrderItem, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, orders.OrderItem{
			Product: it.Product,
			Name:    it.Name,
			Qty:     it.Qty,
			Price:   it.Price,
			Image:   it.Image,
		})
	}
	return orders.Input{
		OrderItems: items,
		ShippingAddress: orders.ShippingAddress{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		ItemsPrice:    o.ItemsPrice,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
	}
}

// paymentRequest accepts the provider payload as the client relays it. PayPal
// reports "status" and nests the payer email; older clients send "state" and a
// top-level email_address.
type paymentRequest struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	State        string `json:"state"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
	Payer        struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

func (p paymentRequest) result() orders.PaymentResult {
	res := orders.PaymentResult{
		ID:           p.ID,
		Status:       p.Status,
		UpdateTime:   p.UpdateTime,
		EmailAddress: p.EmailAddress,
	}
	if res.Status == "" {
		res.Status = p.State
	}
	if res.EmailAddress == "" {
		res.EmailAddress = p.Payer.EmailAddress
	}
	return res
}
