package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/booking"
)

// memSessionStore is an in-memory SessionStore for tests.
type memSessionStore struct {
	sessions map[string]models.AgentSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]models.AgentSession)}
}

func (m *memSessionStore) Get(ctx context.Context, sessionID string) (*models.AgentSession, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (m *memSessionStore) Save(ctx context.Context, session *models.AgentSession) error {
	m.sessions[session.SessionID] = *session
	return nil
}

func (m *memSessionStore) Clear(ctx context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

// memAppointmentRepo backs the availability checker and booking manager.
type memAppointmentRepo struct {
	slots     map[string][]models.AppointmentSlot
	insertErr error
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{slots: make(map[string][]models.AppointmentSlot)}
}

func (r *memAppointmentRepo) fill(date, time string, n int) {
	for i := 0; i < n; i++ {
		r.slots[date] = append(r.slots[date], models.AppointmentSlot{AppointmentTime: time})
	}
}

func (r *memAppointmentRepo) QueryByDate(ctx context.Context, date string) ([]models.AppointmentSlot, error) {
	return r.slots[date], nil
}

func (r *memAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.slots[appt.AppointmentDate] = append(r.slots[appt.AppointmentDate], models.AppointmentSlot{
		AppointmentTime: appt.AppointmentTime,
	})
	return nil
}

func (r *memAppointmentRepo) GetByConfirmation(ctx context.Context, confirmationNumber string) (*models.Appointment, error) {
	return nil, errors.New("not found")
}

func (r *memAppointmentRepo) CancelByConfirmation(ctx context.Context, confirmationNumber, reason string) error {
	return errors.New("not found")
}

type mockKnowledgeService struct{ mock.Mock }

func (m *mockKnowledgeService) Sync(ctx context.Context, faqs []models.FAQEntry) error {
	args := m.Called(ctx, faqs)
	return args.Error(0)
}

func (m *mockKnowledgeService) Search(ctx context.Context, query string, threshold float64) (*models.KnowledgeHit, error) {
	args := m.Called(ctx, query, threshold)
	if hit, ok := args.Get(0).(*models.KnowledgeHit); ok {
		return hit, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockKnowledgeService) AddKnowledge(ctx context.Context, question, answer, category string) error {
	args := m.Called(ctx, question, answer, category)
	return args.Error(0)
}

type mockHelpService struct{ mock.Mock }

func (m *mockHelpService) Create(ctx context.Context, payload models.HelpRequestCreate) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *mockHelpService) GetByID(ctx context.Context, id string) (*models.HelpRequest, error) {
	args := m.Called(ctx, id)
	if req, ok := args.Get(0).(*models.HelpRequest); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHelpService) ListPending(ctx context.Context) ([]models.HelpRequest, error) {
	args := m.Called(ctx)
	if reqs, ok := args.Get(0).([]models.HelpRequest); ok {
		return reqs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHelpService) Resolve(ctx context.Context, id string, response models.SupervisorResponse) (*models.HelpRequest, error) {
	args := m.Called(ctx, id, response)
	if req, ok := args.Get(0).(*models.HelpRequest); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(repo *memAppointmentRepo, kb *mockKnowledgeService, hp *mockHelpService) (*DefaultAgentService, *memSessionStore) {
	store := newMemSessionStore()
	calendar := booking.NewSlotCalendar(repo)
	svc := &DefaultAgentService{
		Sessions: store,
		Checker:  booking.NewAvailabilityChecker(calendar),
		Manager:  booking.NewBookingManager(repo),
		Rules: booking.NewRules(map[string]float64{
			"haircut": 40, "manicure": 35,
		}, "Thursday"),
		Knowledge: kb,
		Help:      hp,
	}
	return svc, store
}

func startedSession(t *testing.T, svc *DefaultAgentService) string {
	t.Helper()
	session, err := svc.StartSession(context.Background(), "room-1")
	require.NoError(t, err)
	return session.SessionID
}

func TestStartAndEndSession(t *testing.T) {
	svc, store := newTestService(newMemAppointmentRepo(), nil, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, models.StateCollecting, session.State)
	assert.NotEmpty(t, session.SessionID)

	require.NoError(t, svc.EndSession(ctx, session.SessionID))
	_, err = store.Get(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateBookingContext_UnknownSessionID(t *testing.T) {
	svc, _ := newTestService(newMemAppointmentRepo(), nil, nil)

	_, err := svc.UpdateBookingContext(context.Background(), "nope", models.BookingUpdate{CustomerName: "Maria"})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateBookingContext_ReportsMissingFields(t *testing.T) {
	svc, _ := newTestService(newMemAppointmentRepo(), nil, nil)
	sessionID := startedSession(t, svc)

	reply, err := svc.UpdateBookingContext(context.Background(), sessionID, models.BookingUpdate{
		CustomerName: "Maria Lopez",
		PhoneNumber:  "(555) 123-4567",
	})

	require.NoError(t, err)
	assert.Contains(t, reply, "I've updated: name, phone")
	assert.Contains(t, reply, "I still need: service, date, time")
}

func TestUpdateBookingContext_ValidationErrorLeavesSessionUntouched(t *testing.T) {
	svc, store := newTestService(newMemAppointmentRepo(), nil, nil)
	sessionID := startedSession(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateBookingContext(ctx, sessionID, models.BookingUpdate{
		CustomerName: "Maria Lopez",
		PhoneNumber:  "555-1234",
	})

	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindValidation))
	session, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, session.Booking.CustomerName)
}

func fillBookingContext(t *testing.T, svc *DefaultAgentService, sessionID string) {
	t.Helper()
	reply, err := svc.UpdateBookingContext(context.Background(), sessionID, models.BookingUpdate{
		CustomerName:    "Maria Lopez",
		PhoneNumber:     "5551234567",
		Service:         "haircut",
		AppointmentDate: "2025-01-15",
		AppointmentTime: "10:00 AM",
	})
	require.NoError(t, err)
	require.Contains(t, reply, "I now have all your information")
}

func TestBookAppointment_FullFlow(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc, store := newTestService(repo, nil, nil)
	sessionID := startedSession(t, svc)
	ctx := context.Background()

	fillBookingContext(t, svc, sessionID)

	summary, err := svc.GetBookingSummary(ctx, sessionID)
	require.NoError(t, err)
	assert.Contains(t, summary, "Does everything look correct?")

	appt, reply, err := svc.BookAppointment(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.Contains(t, reply, appt.ConfirmationNumber)
	assert.Contains(t, reply, "Your appointment is confirmed")

	// The appointment landed in storage.
	slots, err := repo.QueryByDate(ctx, "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	// The session reset for the next booking.
	session, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCollecting, session.State)
	assert.False(t, session.WaitingForConfirmation)
	assert.Equal(t, models.BookingContext{}, session.Booking)
}

func TestBookAppointment_WithoutSummaryIsStateViolation(t *testing.T) {
	svc, store := newTestService(newMemAppointmentRepo(), nil, nil)
	sessionID := startedSession(t, svc)
	ctx := context.Background()

	fillBookingContext(t, svc, sessionID)

	appt, _, err := svc.BookAppointment(ctx, sessionID)

	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindStateViolation))
	assert.Nil(t, appt)
	session, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCollecting, session.State)
}

func TestBookAppointment_SlotFilledBetweenSummaryAndConfirm(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc, store := newTestService(repo, nil, nil)
	sessionID := startedSession(t, svc)
	ctx := context.Background()

	fillBookingContext(t, svc, sessionID)
	_, err := svc.GetBookingSummary(ctx, sessionID)
	require.NoError(t, err)

	// Two other bookings take the slot while the customer is confirming.
	repo.fill("2025-01-15", "10:00 AM", 2)

	appt, reply, err := svc.BookAppointment(ctx, sessionID)

	require.NoError(t, err)
	assert.Nil(t, appt)
	assert.Contains(t, reply, "fully booked")

	// No partial booking and the session still has the confirmed draft, so
	// the customer can pick a different time.
	slots, err := repo.QueryByDate(ctx, "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, slots, 2)
	session, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateReadyForConfirmation, session.State)
	assert.Equal(t, "10:00 AM", session.Booking.AppointmentTime)
}

func TestBookAppointment_PersistenceFailureKeepsDraft(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc, store := newTestService(repo, nil, nil)
	sessionID := startedSession(t, svc)
	ctx := context.Background()

	fillBookingContext(t, svc, sessionID)
	_, err := svc.GetBookingSummary(ctx, sessionID)
	require.NoError(t, err)

	repo.insertErr = errors.New("write concern timeout")

	appt, _, err := svc.BookAppointment(ctx, sessionID)

	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindPersistenceFailure))
	assert.Nil(t, appt)
	session, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateReadyForConfirmation, session.State)
	assert.False(t, session.Booking.Confirmed)
}

func TestCheckAvailability_RecordsCheckOnSession(t *testing.T) {
	repo := newMemAppointmentRepo()
	repo.fill("2025-01-15", "10:00 AM", 2)
	svc, store := newTestService(repo, nil, nil)
	sessionID := startedSession(t, svc)
	ctx := context.Background()

	result, err := svc.CheckAvailability(ctx, sessionID, "2025-01-15", "10:00 AM")

	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityBooked, result.Status)
	session, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, session.AvailabilityChecks, 1)
	assert.Equal(t, "2025-01-15", session.AvailabilityChecks[0].Date)
}

func TestRequestHelp_AnswersFromKnowledgeBase(t *testing.T) {
	kb := new(mockKnowledgeService)
	hp := new(mockHelpService)
	svc, _ := newTestService(newMemAppointmentRepo(), kb, hp)
	sessionID := startedSession(t, svc)

	kb.On("Search", mock.Anything, "do you do bridal packages", kbThreshold).
		Return(&models.KnowledgeHit{Answer: "Yes, we offer bridal packages.", Score: 0.91}, nil)

	reply, err := svc.RequestHelp(context.Background(), sessionID, "do you do bridal packages")

	require.NoError(t, err)
	assert.Equal(t, "Yes, we offer bridal packages.", reply)
	hp.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestHelp_EscalatesWhenKnowledgeBaseMisses(t *testing.T) {
	kb := new(mockKnowledgeService)
	hp := new(mockHelpService)
	svc, _ := newTestService(newMemAppointmentRepo(), kb, hp)
	sessionID := startedSession(t, svc)

	kb.On("Search", mock.Anything, "do you rent chairs", kbThreshold).Return(nil, nil)
	hp.On("Create", mock.Anything, models.HelpRequestCreate{
		Question: "do you rent chairs",
		RoomName: "room-1",
	}).Return("req-1", nil)

	reply, err := svc.RequestHelp(context.Background(), sessionID, "do you rent chairs")

	require.NoError(t, err)
	assert.Contains(t, reply, "sent your question to my supervisor")
	hp.AssertExpectations(t)
}

func TestRequestHelp_SearchFailureStillEscalates(t *testing.T) {
	kb := new(mockKnowledgeService)
	hp := new(mockHelpService)
	svc, _ := newTestService(newMemAppointmentRepo(), kb, hp)
	sessionID := startedSession(t, svc)

	kb.On("Search", mock.Anything, "question", kbThreshold).
		Return(nil, errors.New("embedding service down"))
	hp.On("Create", mock.Anything, mock.Anything).Return("req-2", nil)

	reply, err := svc.RequestHelp(context.Background(), sessionID, "question")

	require.NoError(t, err)
	assert.Contains(t, reply, "supervisor")
	hp.AssertExpectations(t)
}
