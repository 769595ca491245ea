package booking

import (
	"context"

	"go.uber.org/zap"

	appointmentRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/appointment"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// MaxBookingsPerSlot is the salon's per-slot capacity.
const MaxBookingsPerSlot = 2

// BusinessHours lists the bookable time slots in chronological order. Output
// that enumerates slots always follows this order.
var BusinessHours = []string{
	"9:00 AM", "10:00 AM", "11:00 AM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
}

// IsBusinessHour reports whether t is one of the canonical slot labels.
func IsBusinessHour(t string) bool {
	for _, slot := range BusinessHours {
		if slot == t {
			return true
		}
	}
	return false
}

// SlotCalendar answers per-slot occupancy queries for a date. Counts are
// recomputed from storage on every call, never cached, so they reflect the
// store at the moment of the check.
type SlotCalendar struct {
	Repo appointmentRepo.AppointmentRepository
}

// NewSlotCalendar constructs a SlotCalendar over the given repository.
func NewSlotCalendar(repo appointmentRepo.AppointmentRepository) *SlotCalendar {
	return &SlotCalendar{Repo: repo}
}

// CountsFor returns the number of non-cancelled appointments per canonical
// slot on the given date. Time labels in storage that are not canonical slots
// are ignored. On a storage failure it returns a zero-filled map together
// with a storage-unavailable error so callers can degrade gracefully.
func (c *SlotCalendar) CountsFor(ctx context.Context, date string) (map[string]int, error) {
	counts := make(map[string]int, len(BusinessHours))
	for _, slot := range BusinessHours {
		counts[slot] = 0
	}

	slots, err := c.Repo.QueryByDate(ctx, date)
	if err != nil {
		utils.GetLogger().Error("Error fetching slot counts",
			zap.String("date", date), zap.Error(err))
		return counts, NewStorageUnavailableError("appointment store unreachable")
	}

	for _, s := range slots {
		if s.Cancelled {
			continue
		}
		if _, ok := counts[s.AppointmentTime]; ok {
			counts[s.AppointmentTime]++
		}
	}
	return counts, nil
}
