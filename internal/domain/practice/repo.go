package practice

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Practice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Practice, error)
	GetByCode(ctx context.Context, code string) (*Practice, error)
	// Update changes everything except the code.
	Update(ctx context.Context, p *Practice) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context) ([]*Practice, error)
}
