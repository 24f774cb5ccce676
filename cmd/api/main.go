package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/config"
	"github.com/geoattend/geoattend-backend-go/internal/domain/geofence"
	stateDomain "github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/fixtures"
	appHTTP "github.com/geoattend/geoattend-backend-go/internal/handler/http"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/credential"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/email"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/jwt"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/oauth"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/sse"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/storage"
	"github.com/geoattend/geoattend-backend-go/internal/repository/local"
	"github.com/geoattend/geoattend-backend-go/internal/repository/memory"
	"github.com/geoattend/geoattend-backend-go/internal/repository/postgresql"
	attendanceService "github.com/geoattend/geoattend-backend-go/internal/service/attendance"
	serviceAuth "github.com/geoattend/geoattend-backend-go/internal/service/auth"
	employeeService "github.com/geoattend/geoattend-backend-go/internal/service/employee"
	leaveService "github.com/geoattend/geoattend-backend-go/internal/service/leave"
	notificationService "github.com/geoattend/geoattend-backend-go/internal/service/notification"
	reportService "github.com/geoattend/geoattend-backend-go/internal/service/report"
	settingsService "github.com/geoattend/geoattend-backend-go/internal/service/settings"
	stateService "github.com/geoattend/geoattend-backend-go/internal/service/state"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "geoattend-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	var repo stateDomain.DocumentRepository
	switch cfg.Storage.Type {
	case "local":
		files, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
		repo = local.NewDocumentRepository(files)
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		repo = postgresql.NewDocumentRepository(db)
	case "memory":
		repo = memory.NewDocumentRepository()
	default:
		return fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}

	hasher := credential.NewBcryptHasher(bcrypt.DefaultCost)
	zone := geofence.Config{
		Latitude:  cfg.Geofence.Latitude,
		Longitude: cfg.Geofence.Longitude,
		Radius:    cfg.Geofence.Radius,
	}
	store, err := stateService.Open(ctx, repo, func() (stateDomain.AppState, error) {
		logger.Info("No stored state found, seeding defaults")
		return fixtures.DefaultState(hasher, zone)
	})
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}

	hub := sse.NewHub()
	notifierOpts := []email.Option{email.WithPublisher(hub)}
	if relay := email.NewSMTPRelay(cfg.SMTP); relay != nil {
		notifierOpts = append(notifierOpts, email.WithRelay(relay))
	}
	notifier := email.NewNotifier(cfg.Mail.HistorySize, notifierOpts...)

	accessTTL, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("parse access expiration: %w", err)
	}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessTTL)

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	authService := serviceAuth.NewAuthService(store, hasher, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(store, notifier, loc)
	employeeSvc := employeeService.NewEmployeeService(store, hasher, loc)
	leaveSvc := leaveService.NewLeaveService(store, notifier, loc)
	reportSvc := reportService.NewReportService(store, loc)
	settingsSvc := settingsService.NewSettingsService(store)
	notificationSvc := notificationService.NewNotificationService(store, notifier, JWTService)

	router := appHTTP.NewRouter(JWTService, authService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authService, googleService, cfg.App.FrontendURL),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Settings:     appHTTP.NewSettingsHandler(settingsSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, hub),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: []string{cfg.App.FrontendURL},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open event streams end when the process is signalled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Type, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		if err := notifier.Wait(shutdownCtx); err != nil {
			logger.Warn("Pending mail relays abandoned", "error", err)
		}
		return nil
	})

	return g.Wait()
}
