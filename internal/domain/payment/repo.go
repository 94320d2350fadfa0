package payment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Payment, error)
	List(ctx context.Context) ([]*Payment, error)
}
