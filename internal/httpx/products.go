package httpx

import (
	"net/http"

	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/go-chi/chi/v5"
)

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) error {
	ps, err := a.Catalog.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, ps)
	return nil
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request) error {
	p, err := a.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, p)
	return nil
}

// createProduct ignores any body; admins fill the placeholder in with a
// follow-up update.
func (a *API) createProduct(w http.ResponseWriter, r *http.Request) error {
	p, err := a.Catalog.Create(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, p)
	return nil
}

func (a *API) updateProduct(w http.ResponseWriter, r *http.Request) error {
	var req productRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	p, err := a.Catalog.Update(r.Context(), chi.URLParam(r, "id"), req.fields())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, p)
	return nil
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	msg, err := a.Catalog.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, messageBody{Message: msg})
	return nil
}

func (a *API) createReview(w http.ResponseWriter, r *http.Request) error {
	var req reviewRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	u := currentUser(r.Context())
	msg, err := a.Catalog.AddReview(r.Context(), chi.URLParam(r, "id"),
		catalog.Author{ID: u.ID, Name: u.Name}, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, messageBody{Message: msg})
	return nil
}
