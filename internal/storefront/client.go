package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/pkg/errors"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Message is what a branch stores for err: the API's message when there is
// one, the transport error otherwise.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type ProductInput struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	CountInStock int     `json:"countInStock"`
}

type ProfileInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type UserInput struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

type message struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var m message
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil || m.Message == "" {
			m.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: m.Message}
	}
	if out == nil {
		return nil
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decode %s %s", method, path)
}

func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var ps []catalog.Product
	err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &ps)
	return ps, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &p)
	return p, err
}

func (c *Client) CreateProduct(ctx context.Context, token string) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, http.MethodPost, "/api/products", token, struct{}{}, &p)
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, in ProductInput) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), token, in, &p)
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) (string, error) {
	var m message
	err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), token, nil, &m)
	return m.Message, err
}

func (c *Client) CreateReview(ctx context.Context, token, productID string, rating int, comment string) (string, error) {
	var m message
	in := map[string]any{"rating": rating, "comment": comment}
	err := c.do(ctx, http.MethodPost, "/api/products/"+url.PathEscape(productID)+"/reviews", token, in, &m)
	return m.Message, err
}

func (c *Client) Login(ctx context.Context, email, password string) (UserInfo, error) {
	var u UserInfo
	in := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/users/login", "", in, &u)
	return u, err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (UserInfo, error) {
	var u UserInfo
	in := map[string]string{"name": name, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/users", "", in, &u)
	return u, err
}

func (c *Client) Profile(ctx context.Context, token string) (UserInfo, error) {
	var u UserInfo
	err := c.do(ctx, http.MethodGet, "/api/users/profile", token, nil, &u)
	return u, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileInput) (UserInfo, error) {
	var u UserInfo
	err := c.do(ctx, http.MethodPut, "/api/users/profile", token, in, &u)
	return u, err
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]UserInfo, error) {
	var us []UserInfo
	err := c.do(ctx, http.MethodGet, "/api/users", token, nil, &us)
	return us, err
}

func (c *Client) GetUser(ctx context.Context, token, id string) (UserInfo, error) {
	var u UserInfo
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), token, nil, &u)
	return u, err
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, in UserInput) (UserInfo, error) {
	var u UserInfo
	err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), token, in, &u)
	return u, err
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) (string, error) {
	var m message
	err := c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), token, nil, &m)
	return m.Message, err
}

func (c *Client) CreateOrder(ctx context.Context, token string, in orders.Input) (orders.Order, error) {
	var o orders.Order
	err := c.do(ctx, http.MethodPost, "/api/orders", token, in, &o)
	return o, err
}

func (c *Client) GetOrder(ctx context.Context, token, id string) (orders.OrderView, error) {
	var v orders.OrderView
	err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), token, nil, &v)
	return v, err
}

func (c *Client) PayOrder(ctx context.Context, token, id string, res orders.PaymentResult) (orders.Order, error) {
	var o orders.Order
	err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/pay", token, res, &o)
	return o, err
}

func (c *Client) DeliverOrder(ctx context.Context, token, id string) (orders.Order, error) {
	var o orders.Order
	err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/deliver", token, nil, &o)
	return o, err
}

func (c *Client) MyOrders(ctx context.Context, token string) ([]orders.Order, error) {
	var mine []orders.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/myorders", token, nil, &mine)
	return mine, err
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]orders.OrderView, error) {
	var vs []orders.OrderView
	err := c.do(ctx, http.MethodGet, "/api/orders", token, nil, &vs)
	return vs, err
}
