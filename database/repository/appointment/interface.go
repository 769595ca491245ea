// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

// AppointmentRepository defines the storage operations the booking core needs.
type AppointmentRepository interface {
	// QueryByDate returns the appointment slots persisted for a date,
	// cancelled records included (callers filter).
	QueryByDate(ctx context.Context, date string) ([]models.AppointmentSlot, error)
	// Insert persists a new appointment record.
	Insert(ctx context.Context, appt *models.Appointment) error
	// GetByConfirmation retrieves an appointment by its confirmation number.
	GetByConfirmation(ctx context.Context, confirmationNumber string) (*models.Appointment, error)
	// CancelByConfirmation marks an appointment cancelled with a reason.
	CancelByConfirmation(ctx context.Context, confirmationNumber, reason string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a MongoDB AppointmentRepository on the
// given database handle.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
