package triage

import (
	"context"

	"github.com/google/uuid"
)

type CenterRepository interface {
	Create(ctx context.Context, c *CrisisCenter) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*CrisisCenter, error)
}
