package models

// Availability statuses returned by the availability checker.
const (
	AvailabilityAvailable   = "available"
	AvailabilityBooked      = "booked"
	AvailabilityAllBooked   = "all_booked"
	AvailabilityInvalidTime = "invalid_time"
	AvailabilityError       = "error"
)

// AvailabilityResult is the typed outcome of an availability check.
type AvailabilityResult struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	AvailableSlots []string `json:"availableSlots"`
	CheckedDate    string   `json:"checkedDate,omitempty"`
	CheckedTime    string   `json:"checkedTime,omitempty"`
}
