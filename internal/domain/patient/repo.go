package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the full patient list; queue and pipeline views derive
	// from it in memory.
	List(ctx context.Context) ([]*Patient, error)

	// Queue transitions. Each stamps last_status_change and reports whether
	// a row actually changed, so callers can distinguish a lost race from
	// success without a second read.
	SetWaiting(ctx context.Context, id uuid.UUID, visitType string, reason *string, at time.Time) (bool, error)
	StartConsultation(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	CompleteConsultation(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// CountInConsultation reports how many patients currently hold the
	// in_consultation status.
	CountInConsultation(ctx context.Context) (int, error)
}
