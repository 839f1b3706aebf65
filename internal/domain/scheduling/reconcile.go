package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Change carries the reschedule axes a caller may have edited. A nil field
// means the axis was left untouched and the original value is kept verbatim.
type Change struct {
	Date           *string    `json:"date,omitempty"`
	Time           *string    `json:"time,omitempty"`
	Role           *string    `json:"role,omitempty"`
	ProfessionalID *uuid.UUID `json:"professional_id,omitempty"`
}

// Resolved is the outcome of reconciling a Change against the original
// appointment: the full slot and assignment to persist.
type Resolved struct {
	DateTime       time.Time
	Role           string
	ProfessionalID uuid.UUID
}

// Reconcile merges the axes the caller actually changed with the original
// appointment. Untouched axes are carried over from the original, never
// recomputed, so a stale edit form cannot drift fields the user did not
// touch. The changed result is false when every axis resolves to its
// original value, which makes the reschedule a no-op.
func Reconcile(original *Appointment, proposed Change) (Resolved, bool, error) {
	r := Resolved{
		DateTime:       original.DateTime,
		Role:           original.Role,
		ProfessionalID: original.ProfessionalID(),
	}

	datePart := original.DateTime.Format(dateLayout)
	timePart := original.DateTime.Format(timeLayout)

	if proposed.Date != nil && *proposed.Date != "" {
		if _, err := time.Parse(dateLayout, *proposed.Date); err != nil {
			return Resolved{}, false, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, *proposed.Date)
		}
		datePart = *proposed.Date
	}
	if proposed.Time != nil && *proposed.Time != "" {
		if _, err := time.Parse(timeLayout, *proposed.Time); err != nil {
			return Resolved{}, false, fmt.Errorf("%w: invalid time %q, expected HH:MM", ErrInvalidInput, *proposed.Time)
		}
		timePart = *proposed.Time
	}

	combined, err := time.ParseInLocation(dateLayout+" "+timeLayout, datePart+" "+timePart, original.DateTime.Location())
	if err != nil {
		return Resolved{}, false, fmt.Errorf("%w: combine date and time: %v", ErrInvalidInput, err)
	}
	r.DateTime = combined

	if proposed.ProfessionalID != nil && *proposed.ProfessionalID != uuid.Nil {
		r.ProfessionalID = *proposed.ProfessionalID
	}
	if proposed.Role != nil && *proposed.Role != "" {
		r.Role = *proposed.Role
	}

	changed := !r.DateTime.Equal(original.DateTime) ||
		r.Role != original.Role ||
		r.ProfessionalID != original.ProfessionalID()

	return r, changed, nil
}
