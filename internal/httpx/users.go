package httpx

import (
	"net/http"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/notify"
	"github.com/go-chi/chi/v5"
)

// userBody is the public shape of a user. The password hash never leaves the
// store.
type userBody struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

func toUserBody(u accounts.User, token string) userBody {
	return userBody{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin, Token: token}
}

func (a *API) register(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	u, tok, err := a.Accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, toUserBody(u, tok))
	return nil
}

func (a *API) login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	u, tok, err := a.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toUserBody(u, tok))
	return nil
}

func (a *API) profile(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, toUserBody(currentUser(r.Context()), ""))
	return nil
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request) error {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	u, tok, err := a.Accounts.UpdateSelf(r.Context(), currentUser(r.Context()).ID, req.patch())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toUserBody(u, tok))
	return nil
}

func (a *API) notifications(w http.ResponseWriter, r *http.Request) error {
	if a.Notifications == nil {
		writeJSON(w, http.StatusOK, []notify.Notification{})
		return nil
	}
	ns, err := a.Notifications.Recent(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, ns)
	return nil
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) error {
	us, err := a.Accounts.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, us)
	return nil
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) error {
	u, err := a.Accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, u)
	return nil
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) error {
	var req adminUserRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	u, err := a.Accounts.UpdateByID(r.Context(), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toUserBody(u, ""))
	return nil
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) error {
	msg, err := a.Accounts.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, messageBody{Message: msg})
	return nil
}
