package settings

import "context"

type Repository interface {
	// GetAll loads every setting row.
	GetAll(ctx context.Context) (map[string]string, error)
	// ReplaceAll swaps the whole table contents. Callers wrap it in a
	// transaction so a failed replace leaves the old values in place.
	ReplaceAll(ctx context.Context, values map[string]string) error
}
