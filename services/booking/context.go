package booking

import (
	"fmt"
	"strings"
	"time"
)

// Rules bundles the fixed business constraints update validation needs: the
// service price list and the weekday the salon is closed.
type Rules struct {
	Catalogue Catalogue
	ClosedDay time.Weekday
	HasClosed bool
}

// NewRules builds booking rules from the salon's service map and closed day
// name ("Thursday"). An unrecognized day name disables the closed-day check.
func NewRules(services map[string]float64, closedDay string) Rules {
	r := Rules{Catalogue: NewCatalogue(services)}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), closedDay) {
			r.ClosedDay = d
			r.HasClosed = true
			break
		}
	}
	return r
}

// NormalizePhone strips everything but digits and requires exactly 10 of them.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) != 10 {
		return "", NewValidationError("phone number must be exactly 10 digits")
	}
	return clean, nil
}

// validateDate rejects dates falling on the salon's closed day. Dates that do
// not parse as YYYY-MM-DD are let through; the availability check is the
// authority on what is actually bookable.
func (r Rules) validateDate(date string) error {
	if !r.HasClosed {
		return nil
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	if d.Weekday() == r.ClosedDay {
		return NewValidationError(fmt.Sprintf("we're closed on %ss", r.ClosedDay))
	}
	return nil
}
