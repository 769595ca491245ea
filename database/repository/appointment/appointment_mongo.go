// File: database/repository/appointment/appointment_mongo.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

func (r *mongoAppointmentRepo) QueryByDate(ctx context.Context, date string) ([]models.AppointmentSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"appointmentDate": date}
	projection := options.Find().SetProjection(bson.M{
		"appointmentTime": 1,
		"cancelled":       1,
	})
	cursor, err := r.coll.Find(ctx, filter, projection)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var slots []models.AppointmentSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding appointments for %s: %w", date, err)
	}
	return slots, nil
}

func (r *mongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) GetByConfirmation(ctx context.Context, confirmationNumber string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	filter := bson.M{"confirmationNumber": confirmationNumber}
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		return nil, fmt.Errorf("error fetching appointment %s: %w", confirmationNumber, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) CancelByConfirmation(ctx context.Context, confirmationNumber, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"confirmationNumber": confirmationNumber}
	update := bson.M{"$set": bson.M{
		"cancelled":          true,
		"cancellationReason": reason,
		"status":             "cancelled",
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment %s: %w", confirmationNumber, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
