package directory

import (
	"time"

	"github.com/google/uuid"
)

// Professional roles.
const (
	RoleCounselor    = "counselor"
	RolePsychiatrist = "psychiatrist"
)

// Professional maps to the professional table. Counselors and psychiatrists
// share the row shape; Role tells them apart.
type Professional struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Role           string    `db:"role" json:"role"`
	RegistrationNo *string   `db:"registration_no" json:"registration_no,omitempty"`
	Contact        *string   `db:"contact" json:"contact,omitempty"`
	Location       *string   `db:"location" json:"location,omitempty"`
	Latitude       *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude      *float64  `db:"longitude" json:"longitude,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Registered reports whether the professional has completed registration.
// Only registered professionals are bookable and publicly listed.
func (p *Professional) Registered() bool {
	return p.RegistrationNo != nil && *p.RegistrationNo != ""
}

// ValidRole reports whether role is one of the professional roles.
func ValidRole(role string) bool {
	return role == RoleCounselor || role == RolePsychiatrist
}
