package httpx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/notify"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/go-chi/chi/v5"
)

// NotificationFeed is satisfied by *notify.Service.
type NotificationFeed interface {
	Recent(ctx context.Context, userID string) ([]notify.Notification, error)
}

type API struct {
	Accounts       *accounts.Service
	Catalog        *catalog.Service
	Orders         *orders.Service
	Notifications  NotificationFeed // optional
	Tokens         TokenVerifier
	UploadDir      string
	PayPalClientID string
	Production     bool
	Now            func() time.Time
}

type route struct {
	method  string
	pattern string
	tier    Tier
	h       handlerFunc
}

// routes is the whole surface of the API and the tier each endpoint demands.
func (a *API) routes() []route {
	return []route{
		{http.MethodPost, "/api/users", Public, a.register},
		{http.MethodPost, "/api/users/login", Public, a.login},
		{http.MethodGet, "/api/users/profile", Authenticated, a.profile},
		{http.MethodPut, "/api/users/profile", Authenticated, a.updateProfile},
		{http.MethodGet, "/api/users/notifications", Authenticated, a.notifications},
		{http.MethodGet, "/api/users", Admin, a.listUsers},
		{http.MethodGet, "/api/users/{id}", Admin, a.getUser},
		{http.MethodPut, "/api/users/{id}", Admin, a.updateUser},
		{http.MethodDelete, "/api/users/{id}", Admin, a.deleteUser},

		{http.MethodGet, "/api/products", Public, a.listProducts},
		{http.MethodGet, "/api/products/{id}", Public, a.getProduct},
		{http.MethodPost, "/api/products", Admin, a.createProduct},
		{http.MethodPut, "/api/products/{id}", Admin, a.updateProduct},
		{http.MethodDelete, "/api/products/{id}", Admin, a.deleteProduct},
		{http.MethodPost, "/api/products/{id}/reviews", Authenticated, a.createReview},

		{http.MethodPost, "/api/orders", Authenticated, a.createOrder},
		{http.MethodGet, "/api/orders", Admin, a.listOrders},
		{http.MethodGet, "/api/orders/myorders", Authenticated, a.myOrders},
		{http.MethodGet, "/api/orders/{id}", Authenticated, a.getOrder},
		{http.MethodPut, "/api/orders/{id}/pay", Authenticated, a.payOrder},
		{http.MethodPut, "/api/orders/{id}/deliver", Admin, a.deliverOrder},
		{http.MethodPut, "/api/orders/{id}", Admin, a.deliverOrder},

		{http.MethodPost, "/api/upload", Public, a.upload},
		{http.MethodGet, "/api/config/paypal", Public, a.paypalConfig},
	}
}

// Register mounts every endpoint on r along with the uploads file server and
// the JSON not-found handler.
func (a *API) Register(r chi.Router) {
	if a.Now == nil {
		a.Now = time.Now
	}
	for _, rt := range a.routes() {
		r.With(a.guard(rt.tier)).Method(rt.method, rt.pattern, a.handle(rt.h))
	}
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.UploadDir))))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.fail(w, r, apperr.NotFound(fmt.Sprintf("Not Found - %s", r.URL.Path)))
	})
}

func (a *API) paypalConfig(w http.ResponseWriter, r *http.Request) error {
	writeText(w, http.StatusOK, a.PayPalClientID)
	return nil
}
