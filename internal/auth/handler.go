package auth

import (
	"net/http"
	"time"

	"github.com/frahmantamala/pto-portal/internal/transport"
	"github.com/frahmantamala/pto-portal/pkg/logger"
)

type ServiceAPI interface {
	Login(rawEmployeeID string) (*Session, string, error)
	Authenticate(token string) (*Session, error)
	Logout(token string)
	SessionTTL() time.Duration
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// Home is the sign-in entry point. An already-authenticated browser goes
// straight to the PTO form.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if _, err := h.Service.Authenticate(cookie.Value); err == nil {
			http.Redirect(w, r, "/pto", http.StatusSeeOther)
			return
		}
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Sign in with your Employee ID.",
	})
}

// Login handles the sign-in form post: validate the identifier, resolve the
// employee, establish a session, and set the cookie. Failures re-present the
// sign-in error inline rather than a generic error page.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Error("Login: malformed form data", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	sess, token, err := h.Service.Login(r.PostFormValue("employee_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/pto", http.StatusSeeOther)
}

// Logout destroys the session and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		h.Service.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
