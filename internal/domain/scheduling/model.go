package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/mindcare/mindcare/internal/domain/directory"
)

// Appointment statuses. Free-form classification, not a state machine: any
// status may move to any other.
const (
	StatusAccepted   = "Accepted"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

var validStatuses = map[string]bool{
	StatusAccepted:   true,
	StatusInProgress: true,
	StatusResolved:   true,
}

// ValidStatus reports whether status is one of the appointment statuses.
func ValidStatus(status string) bool { return validStatuses[status] }

// Appointment maps to the appointment table. Exactly one of CounselorID and
// PsychiatristID is set, matching Role.
type Appointment struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Role           string     `db:"role" json:"role"`
	UserPublicID   string     `db:"user_public_id" json:"user_public_id"`
	CounselorID    *uuid.UUID `db:"counselor_id" json:"counselor_id,omitempty"`
	PsychiatristID *uuid.UUID `db:"psychiatrist_id" json:"psychiatrist_id,omitempty"`
	AssignedTo     string     `db:"assigned_to" json:"assigned_to"`
	DateTime       time.Time  `db:"date_time" json:"date_time"`
	Status         string     `db:"status" json:"status"`
	Contact        *string    `db:"contact" json:"contact,omitempty"`
	CreatedBy      *string    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// ProfessionalID returns the assigned professional regardless of role.
func (a *Appointment) ProfessionalID() uuid.UUID {
	if a.Role == directory.RolePsychiatrist && a.PsychiatristID != nil {
		return *a.PsychiatristID
	}
	if a.CounselorID != nil {
		return *a.CounselorID
	}
	return uuid.Nil
}

// SetProfessional assigns the professional for the given role, clearing the
// complementary id field.
func (a *Appointment) SetProfessional(role string, id uuid.UUID) {
	a.Role = role
	if role == directory.RolePsychiatrist {
		a.PsychiatristID = &id
		a.CounselorID = nil
		return
	}
	a.CounselorID = &id
	a.PsychiatristID = nil
}
