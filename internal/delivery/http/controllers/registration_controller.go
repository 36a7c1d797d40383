package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"seminarbooking/internal/delivery/http/helpers"
	"seminarbooking/internal/delivery/http/middleware"
	"seminarbooking/internal/domain"
)

// RegisterRequest is the request body for POST /events/{eventID}/registrations.
// All fields are optional; seats defaults to 1 and the price tier falls back
// to the first available one.
type RegisterRequest struct {
	Seats            int             `json:"seats"`
	PriceTier        domain.PriceKey `json:"price_tier"`
	PaymentMethodRef int64           `json:"method_of_payment"`

	RegisteredThemselves bool   `json:"registered_themselves"`
	AttendeesNames       string `json:"attendees_names"`
	Interests            string `json:"interests"`
	Expectations         string `json:"expectations"`
	Notes                string `json:"notes"`

	LodgingRefs  []int64 `json:"lodgings"`
	FoodRefs     []int64 `json:"foods"`
	CheckboxRefs []int64 `json:"checkboxes"`
}

// Validate implements Validator.
func (rr RegisterRequest) Validate() []string {
	var errs []string
	if rr.Seats < 0 {
		errs = append(errs, "seats must be non-negative")
	}
	return errs
}

// RegisterSuccessResponse is the success response envelope for POST /events/{eventID}/registrations (201).
type RegisterSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// MyRegistrationsSuccessResponse is the success response envelope for GET /me/registrations (200).
type MyRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationWithEvent `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Books the authenticated user onto the event. Checks the registration deadline, schedule collisions with the user's other bookings, and capacity. When the event is full and has a waiting queue, the registration is created on the queue instead. Price and queue placement are frozen at booking time.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event uid"
// @Param body body RegisterRequest true "Registration data (all fields optional)"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the created registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (deadline passed, event full, or colliding booking)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventUID := parseUID(r, "eventID")
	if eventUID == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userUID, ok := middleware.UserUIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	in := &domain.RegistrationInput{
		Seats:                req.Seats,
		PriceTier:            req.PriceTier,
		PaymentMethodRef:     req.PaymentMethodRef,
		RegisteredThemselves: req.RegisteredThemselves,
		AttendeesNames:       req.AttendeesNames,
		Interests:            req.Interests,
		Expectations:         req.Expectations,
		Notes:                req.Notes,
		LodgingRefs:          req.LodgingRefs,
		FoodRefs:             req.FoodRefs,
		CheckboxRefs:         req.CheckboxRefs,
	}
	reg, err := c.Service.Register(r.Context(), eventUID, userUID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrRegistrationClosed),
			errors.Is(err, domain.ErrEventFull),
			errors.Is(err, domain.ErrUserBlocked):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// ListMyRegistrations godoc
// @Summary List the current user's registrations
// @Description Returns all registrations of the authenticated user, each bundled with its event. Requires Bearer token.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MyRegistrationsSuccessResponse "data is an array of registrations with their events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/registrations [get]
func (c *RegistrationController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userUID, ok := middleware.UserUIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Service.ListUserRegistrations(r.Context(), userUID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if regs == nil {
		regs = []*domain.RegistrationWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}
