package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/appointment"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// BookingManager commits a completed, confirmed booking to durable storage.
type BookingManager interface {
	CreateBooking(ctx context.Context, payload models.BookingCreate) (*models.Appointment, error)
}

// DefaultBookingManager implements BookingManager over the appointment store.
type DefaultBookingManager struct {
	Repo appointmentRepo.AppointmentRepository
}

// NewBookingManager constructs the default manager.
func NewBookingManager(repo appointmentRepo.AppointmentRepository) *DefaultBookingManager {
	return &DefaultBookingManager{Repo: repo}
}

// CreateBooking re-validates the payload defensively, allocates a unique
// confirmation number and writes a single append-only record. On a write
// failure nothing is persisted and the error is a persistence failure.
func (m *DefaultBookingManager) CreateBooking(ctx context.Context, payload models.BookingCreate) (*models.Appointment, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:                 uuid.New().String(),
		ConfirmationNumber: newConfirmationNumber(),
		CustomerName:       payload.CustomerName,
		PhoneNumber:        payload.PhoneNumber,
		Service:            payload.Service,
		AppointmentDate:    payload.AppointmentDate,
		AppointmentTime:    payload.AppointmentTime,
		Price:              payload.Price,
		Status:             "confirmed",
		CreatedAt:          now,
	}

	if err := m.Repo.Insert(ctx, appt); err != nil {
		utils.GetLogger().Error("Failed to persist booking",
			zap.String("confirmationNumber", appt.ConfirmationNumber), zap.Error(err))
		return nil, NewPersistenceFailure("failed to save the booking")
	}

	utils.GetLogger().Info("Booking created",
		zap.String("confirmationNumber", appt.ConfirmationNumber),
		zap.String("date", appt.AppointmentDate),
		zap.String("time", appt.AppointmentTime))
	return appt, nil
}

func validatePayload(p models.BookingCreate) error {
	if p.CustomerName == "" {
		return NewValidationError("customer name is required")
	}
	if len(p.PhoneNumber) != 10 || strings.ContainsFunc(p.PhoneNumber, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		return NewValidationError("phone number must be exactly 10 digits")
	}
	if p.Service == "" {
		return NewValidationError("service is required")
	}
	if p.AppointmentDate == "" || p.AppointmentTime == "" {
		return NewValidationError("appointment date and time are required")
	}
	if p.Price <= 0 {
		return NewValidationError("price must be set from the service catalogue")
	}
	return nil
}

// newConfirmationNumber allocates a random confirmation identifier. Random
// rather than sequential so there is no central counter to contend on.
func newConfirmationNumber() string {
	return "SLN-" + strings.ToUpper(uuid.New().String()[:8])
}
