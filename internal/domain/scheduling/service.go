package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindcare/mindcare/internal/domain/directory"
)

// Booking hours for patient-initiated flows: [08:00, 19:00).
const (
	openingHour = 8
	closingHour = 19
)

// ProfessionalDirectory resolves professionals for booking validation.
type ProfessionalDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*directory.Professional, error)
}

type Service struct {
	appointments  AppointmentRepository
	professionals ProfessionalDirectory
	now           func() time.Time
}

func NewService(appointments AppointmentRepository, professionals ProfessionalDirectory) *Service {
	return &Service{
		appointments:  appointments,
		professionals: professionals,
		now:           time.Now,
	}
}

// validateSlot rejects slots earlier than the current instant and, for
// patient-initiated flows, enforces the time-of-day window. A slot later
// today is fine; one three hours ago is not, whoever books it.
func (s *Service) validateSlot(dateTime time.Time, staffInitiated bool) error {
	if dateTime.Before(s.now()) {
		return ErrPastDate
	}
	if !staffInitiated {
		hour := dateTime.Hour()
		if hour < openingHour || hour >= closingHour {
			return ErrOutsideHours
		}
	}
	return nil
}

// resolveProfessional ensures the id refers to a currently-registered
// professional of the requested role and returns the display name.
func (s *Service) resolveProfessional(ctx context.Context, role string, id uuid.UUID) (string, error) {
	if !directory.ValidRole(role) {
		return "", ErrRoleMismatch
	}
	if id == uuid.Nil {
		return "", ErrUnknownProfessional
	}
	prof, err := s.professionals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return "", ErrUnknownProfessional
		}
		return "", err
	}
	if !prof.Registered() {
		return "", ErrUnknownProfessional
	}
	if prof.Role != role {
		return "", ErrRoleMismatch
	}
	return prof.FullName, nil
}

// CreateAppointment books a slot. staffInitiated relaxes the time-of-day
// window; the past-time check and slot exclusivity hold for every caller.
func (s *Service) CreateAppointment(ctx context.Context, a *Appointment, staffInitiated bool) error {
	if a.UserPublicID == "" {
		return fmt.Errorf("%w: user_public_id is required", ErrInvalidInput)
	}
	if a.DateTime.IsZero() {
		return fmt.Errorf("%w: date_time is required", ErrInvalidInput)
	}
	if err := s.validateSlot(a.DateTime, staffInitiated); err != nil {
		return err
	}

	name, err := s.resolveProfessional(ctx, a.Role, a.ProfessionalID())
	if err != nil {
		return err
	}
	a.AssignedTo = name
	a.SetProfessional(a.Role, a.ProfessionalID())

	if a.Status == "" {
		a.Status = StatusInProgress
	}
	if !ValidStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, a.Status)
	}

	return s.appointments.Create(ctx, a)
}

// Reschedule applies a partial-diff update to an appointment. Axes absent
// from the change keep their stored values. A change where every axis
// resolves to the original is a no-op that succeeds without a write. Moving
// an appointment within its own slot is not a conflict.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, change Change, staffInitiated bool) (*Appointment, error) {
	original, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, changed, err := Reconcile(original, change)
	if err != nil {
		return nil, err
	}
	if !changed {
		return original, nil
	}

	if err := s.validateSlot(resolved.DateTime, staffInitiated); err != nil {
		return nil, err
	}
	name, err := s.resolveProfessional(ctx, resolved.Role, resolved.ProfessionalID)
	if err != nil {
		return nil, err
	}

	updated := *original
	updated.DateTime = resolved.DateTime
	updated.AssignedTo = name
	updated.SetProfessional(resolved.Role, resolved.ProfessionalID)

	if err := s.appointments.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus sets the classification status. Any status may follow any
// other; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// Cancel removes an appointment permanently. A missing id yields
// ErrNotFound, which callers treat as a non-fatal notice.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, userPublicID string, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, userPublicID, limit, offset)
}

func (s *Service) ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByProfessional(ctx, professionalID, limit, offset)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}
