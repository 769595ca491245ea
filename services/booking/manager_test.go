package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

func validPayload() models.BookingCreate {
	return models.BookingCreate{
		CustomerName:    "Maria Lopez",
		PhoneNumber:     "5551234567",
		Service:         "haircut",
		AppointmentDate: "2025-01-15",
		AppointmentTime: "10:00 AM",
		Price:           40,
	}
}

func TestCreateBooking_PersistsConfirmedAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	mgr := NewBookingManager(repo)

	appt, err := mgr.CreateBooking(context.Background(), validPayload())

	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	assert.True(t, strings.HasPrefix(appt.ConfirmationNumber, "SLN-"), appt.ConfirmationNumber)
	assert.Len(t, appt.ConfirmationNumber, len("SLN-")+8)
	assert.Equal(t, "confirmed", appt.Status)
	assert.False(t, appt.CreatedAt.IsZero())

	stored, err := repo.GetByConfirmation(context.Background(), appt.ConfirmationNumber)
	require.NoError(t, err)
	assert.Equal(t, appt, stored)
}

func TestCreateBooking_ConfirmationNumbersAreUnique(t *testing.T) {
	repo := newFakeAppointmentRepo()
	mgr := NewBookingManager(repo)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		appt, err := mgr.CreateBooking(context.Background(), validPayload())
		require.NoError(t, err)
		assert.False(t, seen[appt.ConfirmationNumber])
		seen[appt.ConfirmationNumber] = true
	}
}

func TestCreateBooking_RejectsInvalidPayloads(t *testing.T) {
	repo := newFakeAppointmentRepo()
	mgr := NewBookingManager(repo)

	cases := []struct {
		name   string
		mutate func(*models.BookingCreate)
	}{
		{"missing name", func(p *models.BookingCreate) { p.CustomerName = "" }},
		{"short phone", func(p *models.BookingCreate) { p.PhoneNumber = "5551234" }},
		{"formatted phone", func(p *models.BookingCreate) { p.PhoneNumber = "555-123-4567" }},
		{"missing service", func(p *models.BookingCreate) { p.Service = "" }},
		{"missing date", func(p *models.BookingCreate) { p.AppointmentDate = "" }},
		{"missing time", func(p *models.BookingCreate) { p.AppointmentTime = "" }},
		{"zero price", func(p *models.BookingCreate) { p.Price = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mutate(&payload)

			appt, err := mgr.CreateBooking(context.Background(), payload)

			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation))
			assert.Nil(t, appt)
		})
	}
	assert.Empty(t, repo.records, "no invalid payload should reach storage")
}

func TestCreateBooking_InsertFailureIsPersistenceFailure(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.insertErr = errors.New("write concern timeout")
	mgr := NewBookingManager(repo)

	appt, err := mgr.CreateBooking(context.Background(), validPayload())

	require.Error(t, err)
	assert.True(t, IsKind(err, KindPersistenceFailure))
	assert.Nil(t, appt)
}
