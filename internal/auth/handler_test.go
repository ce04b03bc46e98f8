package auth_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/auth"
	"github.com/frahmantamala/pto-portal/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth Handler", func() {
	var (
		service *auth.Service
		handler *auth.Handler
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	loginForm := func(employeeID string) *http.Request {
		form := url.Values{"employee_id": {employeeID}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return r
	}

	BeforeEach(func() {
		resolver := &mockResolver{
			employees: map[int64]*employee.Employee{
				1002: {ID: 1002, FirstName: "Bob", LastName: "Smith", Email: "bob.smith@example.com"},
			},
		}
		service = auth.NewService(resolver, auth.NewSessionStore(time.Hour), "unit-test-signing-secret-at-least-32-chars", testLogger)
		handler = auth.NewHandler(service)
	})

	Describe("Login", func() {
		It("should set the session cookie and redirect to the form", func() {
			w := httptest.NewRecorder()
			handler.Login(w, loginForm("1002"))

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/pto"))

			cookies := w.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(auth.CookieName))
			Expect(cookies[0].Value).NotTo(BeEmpty())
			Expect(cookies[0].HttpOnly).To(BeTrue())
		})

		It("should render the not-found message for an unknown identifier", func() {
			w := httptest.NewRecorder()
			handler.Login(w, loginForm("9999"))

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("Employee ID not found. Please try again."))
		})

		It("should render the validation message for a non-numeric identifier", func() {
			w := httptest.NewRecorder()
			handler.Login(w, loginForm("bob"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Employee ID must be a number."))
		})
	})

	Describe("Logout", func() {
		It("should clear the cookie and redirect to sign-in", func() {
			_, token, err := service.Login("1002")
			Expect(err).NotTo(HaveOccurred())

			r := httptest.NewRequest(http.MethodGet, "/logout", nil)
			r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
			w := httptest.NewRecorder()
			handler.Logout(w, r)

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/"))

			cookies := w.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))

			_, err = service.Authenticate(token)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Middleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = auth.Middleware(service)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				sess, ok := internal.SessionFromContext(r.Context())
				Expect(ok).To(BeTrue())
				w.Write([]byte(sess.EmployeeName))
			}))
		})

		It("should pass an authenticated request through with session context", func() {
			_, token, err := service.Login("1002")
			Expect(err).NotTo(HaveOccurred())

			r := httptest.NewRequest(http.MethodGet, "/pto", nil)
			r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, r)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("Bob Smith"))
		})

		It("should redirect a cookieless request to sign-in", func() {
			r := httptest.NewRequest(http.MethodGet, "/pto", nil)
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, r)

			Expect(w.Code).To(Equal(http.StatusSeeOther))
			Expect(w.Header().Get("Location")).To(Equal("/"))
		})

		It("should redirect a forged cookie to sign-in", func() {
			r := httptest.NewRequest(http.MethodGet, "/pto", nil)
			r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "forged"})
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, r)

			Expect(w.Code).To(Equal(http.StatusSeeOther))
		})
	})
})
