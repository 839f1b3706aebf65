package scheduling

import "errors"

var (
	ErrNotFound            = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("this time slot is already booked")
	ErrInvalidInput        = errors.New("invalid input")
	ErrPastDate            = errors.New("appointment time must not be in the past")
	ErrOutsideHours        = errors.New("appointment time must be between 08:00 and 19:00")
	ErrUnknownProfessional = errors.New("professional is not registered")
	ErrRoleMismatch        = errors.New("professional does not match the requested role")
)
