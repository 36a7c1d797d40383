package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"seminarbooking/config"
	_ "seminarbooking/docs"
	"seminarbooking/internal/adapters/auth"
	"seminarbooking/internal/adapters/email"
	"seminarbooking/internal/adapters/i18n"
	httpdelivery "seminarbooking/internal/delivery/http"
	"seminarbooking/internal/delivery/http/controllers"
	"seminarbooking/internal/delivery/http/middleware"
	"seminarbooking/internal/domain"
	"seminarbooking/internal/repository/postgres"
	"seminarbooking/internal/services"
)

const tokenExpiry = 24 * time.Hour

// @title Seminar Booking API
// @version 1.0
// @description Event registration backend: seminars, topics and dates, pricing tiers, capacity with waiting queue.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	organizerRepo := postgres.NewOrganizerRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}

	clock := domain.SystemClock()
	translator := i18n.NewTranslator()
	formatter := i18n.NewCurrencyFormatter()
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewJWTCodec(cfg.JWTSecret)

	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventSvc := services.NewEventService(eventRepo, regRepo, clock, translator)
	regSvc := services.NewRegistrationService(
		eventRepo, regRepo, userRepo, organizerRepo,
		clock, translator, formatter, cfg.CurrencyCode, emailSvc,
	)
	authSvc := services.NewAuthService(userRepo, hasher, tokens, clock, tokenExpiry)

	eventController := controllers.NewEventController(logger, eventSvc)
	regController := controllers.NewRegistrationController(logger, regSvc)
	authController := controllers.NewAuthController(logger, authSvc)

	requireAuth := middleware.RequireAuth(tokens, logger)
	mux := httpdelivery.NewRouter(eventController, regController, authController, requireAuth)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
