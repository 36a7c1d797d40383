package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seminarbooking/internal/delivery/http/helpers"
	"seminarbooking/internal/delivery/http/middleware"
	"seminarbooking/internal/domain"
)

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	registerErr  error
	lastEventUID int64
	lastUserUID  int64
	lastInput    *domain.RegistrationInput
	listResult   []*domain.RegistrationWithEvent
	listErr      error
}

func (f *fakeRegistrationService) Register(ctx context.Context, eventUID, userUID int64, in *domain.RegistrationInput) (*domain.Registration, error) {
	f.lastEventUID = eventUID
	f.lastUserUID = userUID
	f.lastInput = in
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.Registration{
		UID:      100,
		EventRef: eventUID,
		UserRef:  userUID,
		Seats:    in.Seats,
	}, nil
}

func (f *fakeRegistrationService) ListUserRegistrations(ctx context.Context, userUID int64) ([]*domain.RegistrationWithEvent, error) {
	f.lastUserUID = userUID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func authedRequest(method, target, body string, userUID int64) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if userUID > 0 {
		req = req.WithContext(middleware.SetUserUID(req.Context(), userUID))
	}
	return req
}

func TestRegistrationController_Register(t *testing.T) {
	svc := &fakeRegistrationService{}
	controller := NewRegistrationController(testLogger, svc)

	req := authedRequest(http.MethodPost, "/events/7/registrations",
		`{"seats":2,"price_tier":"regular","lodgings":[3]}`, 42)
	req.SetPathValue("eventID", "7")
	rec := httptest.NewRecorder()
	controller.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.lastEventUID)
	assert.Equal(t, int64(42), svc.lastUserUID)
	require.NotNil(t, svc.lastInput)
	assert.Equal(t, 2, svc.lastInput.Seats)
	assert.Equal(t, domain.PriceKeyRegular, svc.lastInput.PriceTier)
	assert.Equal(t, []int64{3}, svc.lastInput.LodgingRefs)

	var envelope struct {
		Data *domain.Registration `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, int64(100), envelope.Data.UID)
}

func TestRegistrationController_Register_NoAuth(t *testing.T) {
	controller := NewRegistrationController(testLogger, &fakeRegistrationService{})

	req := authedRequest(http.MethodPost, "/events/7/registrations", `{"seats":1}`, 0)
	req.SetPathValue("eventID", "7")
	rec := httptest.NewRecorder()
	controller.Register(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegistrationController_Register_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "event not found", serviceErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "invalid input", serviceErr: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "deadline passed", serviceErr: domain.ErrRegistrationClosed, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict},
		{name: "event full", serviceErr: domain.ErrEventFull, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict},
		{name: "colliding booking", serviceErr: domain.ErrUserBlocked, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewRegistrationController(testLogger, &fakeRegistrationService{registerErr: tt.serviceErr})

			req := authedRequest(http.MethodPost, "/events/7/registrations", `{"seats":1}`, 42)
			req.SetPathValue("eventID", "7")
			rec := httptest.NewRecorder()
			controller.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestRegistrationController_Register_BadBody(t *testing.T) {
	controller := NewRegistrationController(testLogger, &fakeRegistrationService{})

	req := authedRequest(http.MethodPost, "/events/7/registrations", `{"seats":-1}`, 42)
	req.SetPathValue("eventID", "7")
	rec := httptest.NewRecorder()
	controller.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "seats must be non-negative")
}

func TestRegistrationController_ListMyRegistrations(t *testing.T) {
	svc := &fakeRegistrationService{
		listResult: []*domain.RegistrationWithEvent{
			{
				Registration: &domain.Registration{UID: 1, EventRef: 7, UserRef: 42},
				Event:        &domain.Event{UID: 7, Title: "Go Workshop"},
			},
		},
	}
	controller := NewRegistrationController(testLogger, svc)

	rec := httptest.NewRecorder()
	controller.ListMyRegistrations(rec, authedRequest(http.MethodGet, "/me/registrations", "", 42))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.lastUserUID)

	var envelope struct {
		Data []*domain.RegistrationWithEvent `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Go Workshop", envelope.Data[0].Event.Title)
}

func TestRegistrationController_ListMyRegistrations_Empty(t *testing.T) {
	controller := NewRegistrationController(testLogger, &fakeRegistrationService{})

	rec := httptest.NewRecorder()
	controller.ListMyRegistrations(rec, authedRequest(http.MethodGet, "/me/registrations", "", 42))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
