// File: services/agent/service.go
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/booking"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/help"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/knowledge"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// kbThreshold is the minimum similarity for a knowledge-base answer to be
// used instead of escalating to the supervisor.
const kbThreshold = 0.7

// AgentService is the tool surface the voice layer calls. Each method is one
// tool; replies are conversational strings for the voice model to speak.
type AgentService interface {
	StartSession(ctx context.Context, roomName string) (*models.AgentSession, error)
	EndSession(ctx context.Context, sessionID string) error
	CurrentDateTime() string
	UpdateBookingContext(ctx context.Context, sessionID string, upd models.BookingUpdate) (string, error)
	GetBookingSummary(ctx context.Context, sessionID string) (string, error)
	CheckAvailability(ctx context.Context, sessionID, date, timeSlot string) (models.AvailabilityResult, error)
	BookAppointment(ctx context.Context, sessionID string) (*models.Appointment, string, error)
	RequestHelp(ctx context.Context, sessionID, question string) (string, error)
}

// DefaultAgentService implements AgentService.
type DefaultAgentService struct {
	Sessions  SessionStore
	Checker   *booking.AvailabilityChecker
	Manager   booking.BookingManager
	Rules     booking.Rules
	Knowledge knowledge.KnowledgeService
	Help      help.HelpRequestService
}

// StartSession creates a fresh call session in the collecting state.
func (a *DefaultAgentService) StartSession(ctx context.Context, roomName string) (*models.AgentSession, error) {
	session := models.NewAgentSession(uuid.New().String(), roomName)
	if err := a.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Call session started",
		zap.String("sessionId", session.SessionID), zap.String("room", roomName))
	return session, nil
}

// EndSession discards a call session. Nothing to roll back: no transaction
// is ever left open.
func (a *DefaultAgentService) EndSession(ctx context.Context, sessionID string) error {
	return a.Sessions.Clear(ctx, sessionID)
}

// CurrentDateTime returns the current date and time in human-readable form.
func (a *DefaultAgentService) CurrentDateTime() string {
	now := time.Now()
	return fmt.Sprintf("The current date and time is %s, %s at %s",
		now.Format("Monday"), now.Format("January 02, 2006"), now.Format("3:04 PM"))
}

// UpdateBookingContext applies collected customer information to the session
// draft and reports what was updated and what is still missing.
func (a *DefaultAgentService) UpdateBookingContext(ctx context.Context, sessionID string, upd models.BookingUpdate) (string, error) {
	session, err := a.Sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	updated, err := booking.ApplyUpdate(session, upd, a.Rules)
	if err != nil {
		return "", err
	}
	if len(updated) == 0 {
		return "Nothing to update. What would you like to change?", nil
	}

	session.LastToolCalled = "update_booking_context"
	if err := a.Sessions.Save(ctx, session); err != nil {
		return "", err
	}

	if session.Booking.IsComplete() {
		return fmt.Sprintf("Great! I've updated: %s. I now have all your information. Let me summarize everything for you.",
			strings.Join(updated, ", ")), nil
	}
	return fmt.Sprintf("I've updated: %s. I still need: %s.",
		strings.Join(updated, ", "), strings.Join(session.Booking.MissingFields(), ", ")), nil
}

// GetBookingSummary reads the completed draft back to the customer and arms
// the session for confirmation.
func (a *DefaultAgentService) GetBookingSummary(ctx context.Context, sessionID string) (string, error) {
	session, err := a.Sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	summary, err := booking.Summary(session)
	if err != nil {
		return "", err
	}

	session.LastToolCalled = "get_booking_summary"
	if err := a.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return summary, nil
}

// CheckAvailability checks slot availability for a date and optional time,
// recording the check in the session history.
func (a *DefaultAgentService) CheckAvailability(ctx context.Context, sessionID, date, timeSlot string) (models.AvailabilityResult, error) {
	session, err := a.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	result := a.Checker.Check(ctx, date, timeSlot)

	session.AvailabilityChecks = append(session.AvailabilityChecks, models.AvailabilityCheck{
		Date:      date,
		Time:      timeSlot,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	session.LastToolCalled = "check_availability"
	if err := a.Sessions.Save(ctx, session); err != nil {
		return models.AvailabilityResult{}, err
	}
	return result, nil
}

// BookAppointment commits the confirmed draft. The slot is re-checked at the
// moment of booking; if it filled up since the summary, the booking is
// rejected and the session stays ready for a different time. On success the
// session resets for the next booking in the same call.
func (a *DefaultAgentService) BookAppointment(ctx context.Context, sessionID string) (*models.Appointment, string, error) {
	session, err := a.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	if err := booking.GuardConfirm(session); err != nil {
		return nil, "", err
	}

	b := session.Booking
	recheck := a.Checker.Check(ctx, b.AppointmentDate, b.AppointmentTime)
	switch recheck.Status {
	case models.AvailabilityAvailable:
		// proceed
	case models.AvailabilityError:
		return nil, "", booking.NewStorageUnavailableError("could not verify the slot is still open")
	default:
		return nil, fmt.Sprintf("Sorry, the slot %s on %s is fully booked. Please choose another time.",
			b.AppointmentTime, b.AppointmentDate), nil
	}

	appt, err := a.Manager.CreateBooking(ctx, models.BookingCreate{
		CustomerName:    b.CustomerName,
		PhoneNumber:     b.PhoneNumber,
		Service:         b.Service,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Price:           b.Price,
	})
	if err != nil {
		// The draft stays intact and unconfirmed so the customer can retry.
		return nil, "", err
	}

	booking.FinishBooking(session)
	session.LastToolCalled = "book_appointment"
	if err := a.Sessions.Save(ctx, session); err != nil {
		utils.GetLogger().Error("Failed to save session after booking",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	reply := fmt.Sprintf("Perfect! Your appointment is confirmed for %s on %s at %s. Your confirmation number is %s. We'll see you then!",
		b.Service, b.AppointmentDate, b.AppointmentTime, appt.ConfirmationNumber)
	return appt, reply, nil
}

// RequestHelp answers from the knowledge base when it can, and otherwise
// escalates the question to a supervisor.
func (a *DefaultAgentService) RequestHelp(ctx context.Context, sessionID, question string) (string, error) {
	logger := utils.GetLogger()
	session, err := a.Sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	question = strings.TrimSpace(question)
	logger.Info("Help requested", zap.String("question", question))

	hit, err := a.Knowledge.Search(ctx, question, kbThreshold)
	if err != nil {
		// A knowledge-base outage should not block the escalation path.
		logger.Error("Knowledge base search failed", zap.Error(err))
	}
	if hit != nil {
		session.LastToolCalled = "request_help"
		if err := a.Sessions.Save(ctx, session); err != nil {
			return "", err
		}
		return hit.Answer, nil
	}

	requestID, err := a.Help.Create(ctx, models.HelpRequestCreate{
		Question: question,
		RoomName: session.RoomName,
	})
	if err != nil {
		return "", err
	}
	logger.Info("Question escalated to supervisor", zap.String("requestId", requestID))

	session.LastToolCalled = "request_help"
	if err := a.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return "I've sent your question to my supervisor. They'll get back to you shortly with the answer. Is there anything else I can help you with in the meantime?", nil
}
