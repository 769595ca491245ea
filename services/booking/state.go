package booking

import (
	"fmt"
	"strings"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

// The conversation state machine guards the ordering of booking operations on
// a call session: information collection, then summary, then confirmation.
// Confirmation is only reachable from a summarized, complete draft, and any
// edit after the summary drops the session back to collecting so the customer
// re-confirms what they will actually get.

// ApplyUpdate validates and applies a booking update to the session draft.
// The update is all-or-nothing: if any supplied field is invalid, nothing
// mutates. It returns the names of the fields that changed.
func ApplyUpdate(s *models.AgentSession, upd models.BookingUpdate, rules Rules) ([]string, error) {
	staged := s.Booking
	var updated []string

	if upd.CustomerName != "" {
		staged.CustomerName = upd.CustomerName
		updated = append(updated, "name")
	}

	if upd.PhoneNumber != "" {
		clean, err := NormalizePhone(upd.PhoneNumber)
		if err != nil {
			return nil, err
		}
		staged.PhoneNumber = clean
		updated = append(updated, "phone")
	}

	if upd.Service != "" {
		price, ok := rules.Catalogue.PriceFor(upd.Service)
		if !ok {
			return nil, NewValidationError(fmt.Sprintf("'%s' is not available. Our services are: %s",
				upd.Service, strings.Join(rules.Catalogue.ServiceNames(), ", ")))
		}
		staged.Service = upd.Service
		staged.Price = price
		updated = append(updated, "service")
	}

	if upd.AppointmentDate != "" {
		if err := rules.validateDate(upd.AppointmentDate); err != nil {
			return nil, err
		}
		staged.AppointmentDate = upd.AppointmentDate
		updated = append(updated, "date")
	}

	if upd.AppointmentTime != "" {
		if !IsBusinessHour(upd.AppointmentTime) {
			return nil, NewValidationError(fmt.Sprintf("%s is outside our business hours. Available times: %s",
				upd.AppointmentTime, strings.Join(BusinessHours, ", ")))
		}
		staged.AppointmentTime = upd.AppointmentTime
		updated = append(updated, "time")
	}

	s.Booking = staged

	// An edit after the summary invalidates the pending confirmation; the
	// customer must hear a fresh summary before booking.
	if len(updated) > 0 && s.WaitingForConfirmation {
		s.WaitingForConfirmation = false
		s.State = models.StateCollecting
	}

	return updated, nil
}

// Summary produces the read-back of the completed draft and arms the session
// for confirmation. An incomplete draft is rejected without a state change.
func Summary(s *models.AgentSession) (string, error) {
	if !s.Booking.IsComplete() {
		return "", NewValidationError(fmt.Sprintf("booking is incomplete, still need: %s",
			strings.Join(s.Booking.MissingFields(), ", ")))
	}

	b := s.Booking
	text := fmt.Sprintf(
		"Here's what I have: Name: %s. Phone: %s. Service: %s ($%.0f). Date: %s. Time: %s. Does everything look correct?",
		b.CustomerName, b.PhoneNumber, b.Service, b.Price, b.AppointmentDate, b.AppointmentTime,
	)

	s.WaitingForConfirmation = true
	s.State = models.StateReadyForConfirmation
	return text, nil
}

// GuardConfirm rejects a booking attempt invoked out of sequence. The session
// is left unchanged.
func GuardConfirm(s *models.AgentSession) error {
	if !s.Booking.IsComplete() {
		return NewStateViolation("cannot book, missing required information")
	}
	if !s.WaitingForConfirmation || s.State != models.StateReadyForConfirmation {
		return NewStateViolation("booking details must be summarized and confirmed first")
	}
	return nil
}

// FinishBooking marks the booking committed and resets the session for the
// next booking in the same call. Completed never persists: the machine folds
// straight back into collecting.
func FinishBooking(s *models.AgentSession) {
	s.Booking.Confirmed = true
	s.State = models.StateCompleted

	s.Booking.Reset()
	s.WaitingForConfirmation = false
	s.State = models.StateCollecting
}
