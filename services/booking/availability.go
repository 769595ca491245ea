package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// AvailabilityChecker applies the per-slot capacity policy on top of the slot
// calendar and classifies a request into an availability status.
type AvailabilityChecker struct {
	Calendar *SlotCalendar
}

// NewAvailabilityChecker constructs a checker over the given calendar.
func NewAvailabilityChecker(calendar *SlotCalendar) *AvailabilityChecker {
	return &AvailabilityChecker{Calendar: calendar}
}

// Check reports availability for a date and, optionally, a specific time.
// With an empty time it reports all open slots for the date. Slot lists are
// always in canonical chronological order.
func (ac *AvailabilityChecker) Check(ctx context.Context, date, time string) models.AvailabilityResult {
	counts, err := ac.Calendar.CountsFor(ctx, date)
	if err != nil {
		utils.GetLogger().Error("Availability check failed",
			zap.String("date", date), zap.Error(err))
		return models.AvailabilityResult{
			Status:         models.AvailabilityError,
			Message:        "I'm having trouble checking availability. Let me get help from my supervisor.",
			AvailableSlots: []string{},
			CheckedDate:    date,
			CheckedTime:    time,
		}
	}

	available := availableSlots(counts)

	if time != "" {
		return ac.checkSpecificTime(date, time, counts, available)
	}
	return ac.checkAllSlots(date, available)
}

// availableSlots filters the canonical slots down to those under capacity,
// preserving chronological order.
func availableSlots(counts map[string]int) []string {
	available := make([]string, 0, len(BusinessHours))
	for _, slot := range BusinessHours {
		if counts[slot] < MaxBookingsPerSlot {
			available = append(available, slot)
		}
	}
	return available
}

func (ac *AvailabilityChecker) checkSpecificTime(date, time string, counts map[string]int, available []string) models.AvailabilityResult {
	if !IsBusinessHour(time) {
		return models.AvailabilityResult{
			Status: models.AvailabilityInvalidTime,
			Message: fmt.Sprintf("%s is outside our business hours. Available times: %s",
				time, strings.Join(BusinessHours, ", ")),
			AvailableSlots: append([]string(nil), BusinessHours...),
			CheckedDate:    date,
			CheckedTime:    time,
		}
	}

	if counts[time] < MaxBookingsPerSlot {
		return models.AvailabilityResult{
			Status:         models.AvailabilityAvailable,
			Message:        fmt.Sprintf("%s on %s is available!", time, date),
			AvailableSlots: []string{time},
			CheckedDate:    date,
			CheckedTime:    time,
		}
	}

	if len(available) > 0 {
		return models.AvailabilityResult{
			Status: models.AvailabilityBooked,
			Message: fmt.Sprintf("%s is fully booked. Available slots on %s: %s",
				time, date, strings.Join(available, ", ")),
			AvailableSlots: available,
			CheckedDate:    date,
			CheckedTime:    time,
		}
	}

	return models.AvailabilityResult{
		Status:         models.AvailabilityAllBooked,
		Message:        fmt.Sprintf("All slots on %s are fully booked.", date),
		AvailableSlots: []string{},
		CheckedDate:    date,
		CheckedTime:    time,
	}
}

func (ac *AvailabilityChecker) checkAllSlots(date string, available []string) models.AvailabilityResult {
	if len(available) > 0 {
		return models.AvailabilityResult{
			Status: models.AvailabilityAvailable,
			Message: fmt.Sprintf("Available times on %s: %s",
				date, strings.Join(available, ", ")),
			AvailableSlots: available,
			CheckedDate:    date,
		}
	}
	return models.AvailabilityResult{
		Status: models.AvailabilityAllBooked,
		Message: fmt.Sprintf("Unfortunately, we're fully booked on %s. Would you like to check another date?",
			date),
		AvailableSlots: []string{},
		CheckedDate:    date,
	}
}
