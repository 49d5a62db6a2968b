package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	serverMetrics "roktoSheba/app/echo-server/metrics"
	"roktoSheba/app/echo-server/router"
	"roktoSheba/business/admin"
	"roktoSheba/business/payments"
	"roktoSheba/business/request"
	userService "roktoSheba/business/user"
	"roktoSheba/internal/middleware"
	"roktoSheba/internal/repository/checkout"
	"roktoSheba/internal/repository/firebase"
	mongoRepo "roktoSheba/internal/repository/mongo"
	"roktoSheba/internal/repository/notification"
	psqlRepo "roktoSheba/internal/repository/postgres"
	"roktoSheba/internal/rest"
	"roktoSheba/pkg/config"
	"roktoSheba/pkg/database/mongo"
	"roktoSheba/pkg/database/postgres"
	"roktoSheba/pkg/logger"
	"roktoSheba/pkg/mq"
	"roktoSheba/pkg/obs"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

type eventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

type mailer interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, message string) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Roktosheba", "version", cfg.App.Version)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	shutdownTracer, err := obs.InitTracer(startupCtx, cfg.App.Name, cfg.App.Version, cfg.App.Environment, cfg.Otel.Endpoint)
	if err != nil {
		logger.Fatal("Failed to init tracer", "error", err)
	}

	mongoClient, mongoDB, err := mongo.InitMongo(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to mongodb", "error", err)
	}
	if err := mongoRepo.EnsureIndexes(startupCtx, mongoDB); err != nil {
		logger.Fatal("Failed to ensure mongodb indexes", "error", err)
	}
	logger.Info("MongoDB connected successfully", "database", cfg.Mongo.Name)

	db, err := postgres.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := psqlRepo.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate payments table", "error", err)
	}
	logger.Info("Database connected successfully")

	authClient, err := firebase.NewAuthClient(context.Background(), cfg.Firebase.ServiceKey)
	if err != nil {
		logger.Fatal("Failed to init firebase auth", "error", err)
	}
	verifier := firebase.NewTokenVerifier(authClient)

	successURL, cancelURL := checkout.RedirectURLs(cfg.App.SiteDomain)
	checkoutRepo := checkout.NewCheckoutRepository(
		checkout.CheckoutConfig{
			SecretKey:          cfg.Stripe.SecretKey,
			Currency:           cfg.Stripe.Currency,
			SuccessRedirectUrl: successURL,
			CancelRedirectUrl:  cancelURL,
		},
	)

	// Init notification from mailjet
	var mailjetEmail mailer = notification.Discard{}
	if cfg.MailjetEnabled() {
		mailjetEmail = notification.NewMailjetRepository(
			notification.MailjetConfig{
				MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
				MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
				MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
				MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
				MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
			},
		)
	} else {
		logger.Warn("Mailjet not configured, receipts are disabled")
	}

	var events eventPublisher = mq.Discard{}
	if cfg.Rabbit.URL != "" {
		publisher, err := mq.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect to rabbitmq", "error", err)
		}
		events = publisher
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := mongoRepo.NewUserRepository(mongoDB)
	requestRepo := mongoRepo.NewRequestRepository(mongoDB)
	paymentsRepo := psqlRepo.NewPaymentsRepository(db)

	// Init service
	userService := userService.NewUserService(userRepo, validate)
	requestService := request.NewRequestService(requestRepo, events)
	adminService := admin.NewAdminService(userRepo, requestRepo, paymentsRepo)
	paymentsService := payments.NewPaymentsService(paymentsRepo, checkoutRepo, mailjetEmail, events)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	requestHandler := rest.NewRequestHandler(requestService)
	adminHandler := rest.NewAdminHandler(adminService)
	paymentsHandler := rest.NewPaymentsHandler(paymentsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.Info("Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))
	e.Use(middleware.Metrics())

	serverMetrics.Setup(e)

	// Access control
	guards := router.Guards{
		AuthRequired: middleware.AuthMiddleware(verifier),
		OwnerOnly:    middleware.OwnerOnly("email"),
	}
	if cfg.App.EnforceAdminRole {
		guards.AdminOnly = []echo.MiddlewareFunc{middleware.AdminOnly(userService)}
		logger.Info("Admin role enforcement enabled")
	}

	// Setup routes
	api := e.Group("")
	router.SetHealthRoutes(api)
	router.SetupUserRoutes(api, userHandler, guards)
	router.SetupRequestRoutes(api, requestHandler, guards)
	router.SetupAdminRoutes(api, adminHandler, guards)
	router.SetPaymentsRoutes(api, paymentsHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := events.Close(); err != nil {
		logger.Error("Failed to close event publisher", "error", err)
	}
	if err := mongo.CloseMongo(ctx, mongoClient); err != nil {
		logger.Error("Failed to close mongodb", "error", err)
	}
	if err := postgres.ClosePostgres(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		logger.Error("Failed to flush traces", "error", err)
	}

	logger.Info("Server stopped")
}
