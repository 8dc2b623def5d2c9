package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront/internal/apperr"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/go-chi/chi/v5/middleware"
)

// handlerFunc is an endpoint that reports failure by returning an error; the
// single adapter in handle turns it into a response.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

const storeTimeout = 5 * time.Second

type errorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(s))
}

func (a *API) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()
		ctx = orders.WithTraceID(ctx, middleware.GetReqID(ctx))
		if err := h(w, r.WithContext(ctx)); err != nil {
			a.fail(w, r, err)
		}
	}
}

// fail converts any error into {message} with the status of its kind. Stack
// traces are included outside production.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	body := errorBody{Message: apperr.Message(err)}
	if !a.Production {
		body.Stack = apperr.Stack(err)
	}
	if kind == apperr.KindInternal {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "err", apperr.Stack(err))
	}
	writeJSON(w, kind.Status(), body)
}
