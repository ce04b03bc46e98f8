package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/auth"
	"github.com/frahmantamala/pto-portal/internal/core/events"
	"github.com/frahmantamala/pto-portal/internal/employee"
	employeePostgres "github.com/frahmantamala/pto-portal/internal/employee/postgres"
	"github.com/frahmantamala/pto-portal/internal/notification"
	"github.com/frahmantamala/pto-portal/internal/pto"
	ptoPostgres "github.com/frahmantamala/pto-portal/internal/pto/postgres"
	"github.com/frahmantamala/pto-portal/internal/schedule"
	schedulePostgres "github.com/frahmantamala/pto-portal/internal/schedule/postgres"
	"github.com/frahmantamala/pto-portal/internal/transport/rest"
	"github.com/frahmantamala/pto-portal/internal/transport/swagger"
	"github.com/frahmantamala/pto-portal/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server for the PTO portal`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config          *internal.Config
	DB              *sqlx.DB
	Router          *chi.Mux
	AuthHandler     *auth.Handler
	AuthService     *auth.Service
	PTOHandler      *pto.Handler
	ScheduleHandler *schedule.Handler
	Logger          *slog.Logger
}

func startHTTPServer() {
	logger.Init(os.Getenv("APP_ENV"))

	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.AuthHandler, deps.AuthService, deps.PTOHandler, deps.ScheduleHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := swagger.ValidateDocument("./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	lg := logger.L()

	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, lg)

	bus := events.NewBus(lg)

	requestRepo := ptoPostgres.NewRequestRepository(gormDB)
	ptoService := pto.NewService(requestRepo, bus, lg)

	snapshotRepo := schedulePostgres.NewSnapshotRepository(gormDB)
	scheduleService := schedule.NewService(employeeService, ptoService, snapshotRepo, lg)

	dispatcher, err := notification.NewDispatcher(config.SMTP, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mail dispatcher: %w", err)
	}
	subscriber := notification.NewSubscriber(employeeService, dispatcher, lg)
	subscriber.Register(bus)

	sessions := auth.NewSessionStore(config.Security.SessionTTL)
	authService := auth.NewService(employeeService, sessions, config.Security.SessionSecret, lg)

	return &Dependencies{
		Config:          config,
		Logger:          lg,
		DB:              db,
		Router:          chi.NewRouter(),
		AuthHandler:     auth.NewHandler(authService),
		AuthService:     authService,
		PTOHandler:      pto.NewHandler(ptoService),
		ScheduleHandler: schedule.NewHandler(scheduleService),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
