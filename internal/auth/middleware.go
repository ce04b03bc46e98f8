package auth

import (
	"net/http"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/pkg/logger"
)

// Middleware gates the protected portal pages. Without a live session the
// browser is sent back to the sign-in page; with one, the request context
// carries the authenticated employee for every downstream handler.
func Middleware(svc ServiceAPI) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			sess, err := svc.Authenticate(cookie.Value)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := internal.ContextWithSession(r.Context(), &internal.SessionInfo{
				SessionID:    sess.ID,
				EmployeeID:   sess.EmployeeID,
				EmployeeName: sess.EmployeeName,
			})
			ctx = logger.With(ctx, "employee_id", sess.EmployeeID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
