package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("professional not found")

type Service struct {
	professionals Repository
}

func NewService(professionals Repository) *Service {
	return &Service{professionals: professionals}
}

func (s *Service) CreateProfessional(ctx context.Context, p *Professional) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if !ValidRole(p.Role) {
		return fmt.Errorf("invalid role: %s", p.Role)
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be set together")
	}
	return s.professionals.Create(ctx, p)
}

func (s *Service) GetProfessional(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return s.professionals.GetByID(ctx, id)
}

func (s *Service) UpdateProfessional(ctx context.Context, p *Professional) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if !ValidRole(p.Role) {
		return fmt.Errorf("invalid role: %s", p.Role)
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be set together")
	}
	return s.professionals.Update(ctx, p)
}

func (s *Service) DeleteProfessional(ctx context.Context, id uuid.UUID) error {
	return s.professionals.Delete(ctx, id)
}

// ListRegistered returns bookable professionals only: those whose
// registration number is on file.
func (s *Service) ListRegistered(ctx context.Context, role string, limit, offset int) ([]*Professional, int, error) {
	if role != "" && !ValidRole(role) {
		return nil, 0, fmt.Errorf("invalid role: %s", role)
	}
	return s.professionals.List(ctx, role, true, limit, offset)
}

// ListAll returns every professional record, including incomplete signups.
func (s *Service) ListAll(ctx context.Context, role string, limit, offset int) ([]*Professional, int, error) {
	if role != "" && !ValidRole(role) {
		return nil, 0, fmt.Errorf("invalid role: %s", role)
	}
	return s.professionals.List(ctx, role, false, limit, offset)
}
