package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/pto-portal/internal/auth"
	"github.com/frahmantamala/pto-portal/internal/pto"
	"github.com/frahmantamala/pto-portal/internal/schedule"
	"github.com/frahmantamala/pto-portal/internal/transport/middleware"
	"github.com/frahmantamala/pto-portal/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, authService *auth.Service, ptoHandler *pto.Handler, scheduleHandler *schedule.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Operational endpoints
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)
	})

	// Sign-in flow stays public
	if authHandler != nil {
		router.Get("/", authHandler.Home)
		router.Post("/", authHandler.Login)
		router.Get("/logout", authHandler.Logout)
	}

	// Portal pages require a live session
	router.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authService))

		if ptoHandler != nil {
			pr.Get("/pto", ptoHandler.RequestForm)
			pr.Post("/pto", ptoHandler.SubmitRequest)
			pr.Get("/requests", ptoHandler.ListRequests)
		}

		if scheduleHandler != nil {
			pr.Get("/schedule", scheduleHandler.Export)
		}
	})
}
