package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	agentSvc "github.com/CaptainRedCodes/Saloon-AI-Agent/services/agent"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/booking"
)

type mockAgentService struct{ mock.Mock }

func (m *mockAgentService) StartSession(ctx context.Context, roomName string) (*models.AgentSession, error) {
	args := m.Called(ctx, roomName)
	if s, ok := args.Get(0).(*models.AgentSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAgentService) EndSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockAgentService) CurrentDateTime() string {
	return m.Called().String(0)
}

func (m *mockAgentService) UpdateBookingContext(ctx context.Context, sessionID string, upd models.BookingUpdate) (string, error) {
	args := m.Called(ctx, sessionID, upd)
	return args.String(0), args.Error(1)
}

func (m *mockAgentService) GetBookingSummary(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockAgentService) CheckAvailability(ctx context.Context, sessionID, date, timeSlot string) (models.AvailabilityResult, error) {
	args := m.Called(ctx, sessionID, date, timeSlot)
	return args.Get(0).(models.AvailabilityResult), args.Error(1)
}

func (m *mockAgentService) BookAppointment(ctx context.Context, sessionID string) (*models.Appointment, string, error) {
	args := m.Called(ctx, sessionID)
	if appt, ok := args.Get(0).(*models.Appointment); ok {
		return appt, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockAgentService) RequestHelp(ctx context.Context, sessionID, question string) (string, error) {
	args := m.Called(ctx, sessionID, question)
	return args.String(0), args.Error(1)
}

func newTestRouter(svc agentSvc.AgentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAgentHandler(svc)
	r := gin.New()
	r.POST("/api/agent/session", h.StartSessionHandler)
	r.POST("/api/agent/session/:sessionID/tools/update-booking", h.UpdateBookingContextHandler)
	r.POST("/api/agent/session/:sessionID/tools/booking-summary", h.GetBookingSummaryHandler)
	r.POST("/api/agent/session/:sessionID/tools/book-appointment", h.BookAppointmentHandler)
	r.POST("/api/agent/session/:sessionID/tools/request-help", h.RequestHelpHandler)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStartSessionHandler(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("StartSession", mock.Anything, "room-1").
		Return(models.NewAgentSession("sess-1", "room-1"), nil)

	w := doJSON(newTestRouter(svc), http.MethodPost, "/api/agent/session", `{"roomName":"room-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body models.AgentSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sess-1", body.SessionID)
	assert.Equal(t, models.StateCollecting, body.State)
}

func TestUpdateBookingHandler_UnknownSessionIs404(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("UpdateBookingContext", mock.Anything, "nope", mock.Anything).
		Return("", agentSvc.ErrSessionNotFound)

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/nope/tools/update-booking", `{"customerName":"Maria"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBookingHandler_ValidationErrorIsCorrectivePrompt(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("UpdateBookingContext", mock.Anything, "sess-1", mock.Anything).
		Return("", booking.NewValidationError("phone number must be exactly 10 digits"))

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/sess-1/tools/update-booking", `{"phoneNumber":"555-1234"}`)

	// Expected conversational conditions come back 200 so the voice layer
	// can speak the corrective prompt.
	require.Equal(t, http.StatusOK, w.Code)
	var body ToolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation", body.Status)
	assert.Equal(t, "phone number must be exactly 10 digits", body.Reply)
}

func TestBookingSummaryHandler_StateViolation(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("GetBookingSummary", mock.Anything, "sess-1").
		Return("", booking.NewStateViolation("booking details must be summarized and confirmed first"))

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/sess-1/tools/booking-summary", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body ToolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "state_violation", body.Status)
}

func TestBookAppointmentHandler_Success(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("BookAppointment", mock.Anything, "sess-1").
		Return(&models.Appointment{ConfirmationNumber: "SLN-1A2B3C4D"},
			"Perfect! Your appointment is confirmed.", nil)

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/sess-1/tools/book-appointment", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "SLN-1A2B3C4D", body["confirmationNumber"])
}

func TestBookAppointmentHandler_SlotTaken(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("BookAppointment", mock.Anything, "sess-1").
		Return(nil, "Sorry, the slot 10:00 AM on 2025-01-15 is fully booked. Please choose another time.", nil)

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/sess-1/tools/book-appointment", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body ToolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "slot_taken", body.Status)
	assert.Contains(t, body.Reply, "fully booked")
}

func TestBookAppointmentHandler_PersistenceFailureSaysNotBooked(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("BookAppointment", mock.Anything, "sess-1").
		Return(nil, "", booking.NewPersistenceFailure("failed to save the booking"))

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/sess-1/tools/book-appointment", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body ToolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "persistence_failure", body.Status)
	assert.Contains(t, body.Reply, "has not been made")
}

func TestRequestHelpHandler_RequiresQuestion(t *testing.T) {
	svc := new(mockAgentService)

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/sess-1/tools/request-help", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RequestHelp", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestHelpHandler_UnexpectedErrorIs500(t *testing.T) {
	svc := new(mockAgentService)
	svc.On("RequestHelp", mock.Anything, "sess-1", "q").
		Return("", errors.New("redis: connection pool exhausted"))

	w := doJSON(newTestRouter(svc), http.MethodPost,
		"/api/agent/session/sess-1/tools/request-help", `{"question":"q"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
