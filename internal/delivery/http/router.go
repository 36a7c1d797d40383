package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"seminarbooking/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps handlers that need an authenticated user.
func NewRouter(
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	authController *controllers.AuthController,
	requireAuth func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", requireAuth(registrationController.Register))
	mux.HandleFunc("GET /me/registrations", requireAuth(registrationController.ListMyRegistrations))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
