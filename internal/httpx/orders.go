package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) error {
	var req orderRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	o, err := a.Orders.Create(r.Context(), currentUser(r.Context()).ID, req.input())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, o)
	return nil
}

func (a *API) getOrder(w http.ResponseWriter, r *http.Request) error {
	v, err := a.Orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, v)
	return nil
}

func (a *API) payOrder(w http.ResponseWriter, r *http.Request) error {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	o, err := a.Orders.MarkPaid(r.Context(), chi.URLParam(r, "id"), req.result())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, o)
	return nil
}

func (a *API) deliverOrder(w http.ResponseWriter, r *http.Request) error {
	o, err := a.Orders.MarkDelivered(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, o)
	return nil
}

func (a *API) myOrders(w http.ResponseWriter, r *http.Request) error {
	mine, err := a.Orders.ListMine(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, mine)
	return nil
}

func (a *API) listOrders(w http.ResponseWriter, r *http.Request) error {
	vs, err := a.Orders.ListAll(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, vs)
	return nil
}
