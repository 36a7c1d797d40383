package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"seminarbooking/internal/delivery/http/helpers"
	"seminarbooking/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// parseUID parses a positive int64 path value. Returns 0 when missing or malformed.
func parseUID(r *http.Request, name string) int64 {
	raw := r.PathValue(name)
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || uid <= 0 {
		return 0
	}
	return uid
}

// EventResponse is the data payload for GET /events/{eventID}. It carries the
// event with its currently available prices, capacity numbers, time slots,
// and display-formatted date and time ranges.
type EventResponse struct {
	Event     *domain.Event         `json:"event"`
	DateRange string                `json:"date_range"`
	TimeRange string                `json:"time_range"`
	Prices    []domain.Price        `json:"prices"`
	Capacity  *domain.CapacityStats `json:"capacity"`
	Slots     []*domain.TimeSlot    `json:"slots,omitempty"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEvent godoc
// @Summary Get an event by uid
// @Description Returns the event with its available price tiers, capacity numbers, and time slots. Date records show the descriptive fields of their topic. Topic records are not directly visible and yield 404.
// @Tags events
// @Produce json
// @Param eventID path int true "Event uid"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event with prices and capacity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	uid := parseUID(r, "eventID")
	if uid == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	details, err := c.Service.GetEventDetails(r.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	span := details.DisplaySpan()
	helpers.WriteJSONSuccess(w, http.StatusOK, EventResponse{
		Event:     details.Event,
		DateRange: span.DateRange(),
		TimeRange: span.TimeRange(),
		Prices:    details.Prices,
		Capacity:  details.Capacity,
		Slots:     details.Slots,
	})
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListEvents godoc
// @Summary List upcoming events
// @Description Returns a paginated list of upcoming bookable events ordered by begin date. Topic records are excluded. Use page and page_size query params.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListUpcoming(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: events, Pagination: meta})
}
