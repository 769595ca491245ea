package models

import "time"

// BookingContext is the mutable draft of one in-progress booking. Each call
// session owns exactly one; it is reset after a successful commit.
type BookingContext struct {
	CustomerName    string  `json:"customerName,omitempty"`
	PhoneNumber     string  `json:"phoneNumber,omitempty"`
	Service         string  `json:"service,omitempty"`
	AppointmentDate string  `json:"appointmentDate,omitempty"`
	AppointmentTime string  `json:"appointmentTime,omitempty"`
	Price           float64 `json:"price,omitempty"`
	Confirmed       bool    `json:"confirmed"`
}

// IsComplete reports whether all required fields are present. Price is derived
// from the service and is not part of the completeness check.
func (b *BookingContext) IsComplete() bool {
	return b.CustomerName != "" &&
		b.PhoneNumber != "" &&
		b.Service != "" &&
		b.AppointmentDate != "" &&
		b.AppointmentTime != ""
}

// MissingFields lists the required fields that are still empty, in the order
// they are usually collected.
func (b *BookingContext) MissingFields() []string {
	var missing []string
	if b.CustomerName == "" {
		missing = append(missing, "name")
	}
	if b.PhoneNumber == "" {
		missing = append(missing, "phone number")
	}
	if b.Service == "" {
		missing = append(missing, "service")
	}
	if b.AppointmentDate == "" {
		missing = append(missing, "date")
	}
	if b.AppointmentTime == "" {
		missing = append(missing, "time")
	}
	return missing
}

// Reset clears the draft back to its initial empty state.
func (b *BookingContext) Reset() {
	*b = BookingContext{}
}

// BookingUpdate carries the fields a single tool call may set on the booking
// context. Nil/empty fields are left untouched.
type BookingUpdate struct {
	CustomerName    string `json:"customerName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Service         string `json:"service,omitempty"`
	AppointmentDate string `json:"appointmentDate,omitempty"`
	AppointmentTime string `json:"appointmentTime,omitempty"`
}

// BookingCreate is the validated payload handed to the booking manager.
type BookingCreate struct {
	CustomerName    string  `json:"customerName"`
	PhoneNumber     string  `json:"phoneNumber"`
	Service         string  `json:"service"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	Price           float64 `json:"price"`
}

// Appointment is a confirmed booking record as persisted. Immutable once
// written except for the cancellation fields.
type Appointment struct {
	ID                 string    `bson:"id" json:"id"`
	ConfirmationNumber string    `bson:"confirmationNumber" json:"confirmationNumber"`
	CustomerName       string    `bson:"customerName" json:"customerName"`
	PhoneNumber        string    `bson:"phoneNumber" json:"phoneNumber"`
	Service            string    `bson:"service" json:"service"`
	AppointmentDate    string    `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime    string    `bson:"appointmentTime" json:"appointmentTime"`
	Price              float64   `bson:"price" json:"price"`
	Status             string    `bson:"status" json:"status"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	Cancelled          bool      `bson:"cancelled" json:"cancelled"`
	CancellationReason string    `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
}

// AppointmentSlot is the projection the slot calendar needs: the stored time
// label plus whether the record was cancelled.
type AppointmentSlot struct {
	AppointmentTime string `bson:"appointmentTime" json:"appointmentTime"`
	Cancelled       bool   `bson:"cancelled" json:"cancelled"`
}
