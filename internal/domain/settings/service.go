package settings

import (
	"context"
	"fmt"
	"strconv"
)

// TxRunner runs fn inside a transaction. Production wiring passes db.InTx
// bound to the pool; tests pass a pass-through.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo Repository
	inTx TxRunner
}

func NewService(repo Repository, inTx TxRunner) *Service {
	if inTx == nil {
		inTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{repo: repo, inTx: inTx}
}

// Get returns every setting, backfilling defaults for keys that have never
// been written.
func (s *Service) Get(ctx context.Context) (map[string]string, error) {
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := Defaults()
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// Replace validates and swaps the full settings map in one transaction.
// Partial updates are not supported: the console always submits the whole
// form, and a failed write leaves the previous values intact.
func (s *Service) Replace(ctx context.Context, values map[string]string) error {
	for k, v := range values {
		if !knownKey(k) {
			return fmt.Errorf("unknown setting %q", k)
		}
		if err := validateValue(k, v); err != nil {
			return err
		}
	}
	for k := range Defaults() {
		if _, ok := values[k]; !ok {
			return fmt.Errorf("missing setting %q", k)
		}
	}
	return s.inTx(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceAll(ctx, values)
	})
}

func validateValue(key, value string) error {
	switch key {
	case KeyRequireStrongPassword, KeyEnableAuditLog:
		if value != "true" && value != "false" {
			return fmt.Errorf("%s must be true or false", key)
		}
	case KeySessionTimeout, KeyMaxLoginAttempts:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
	case KeySystemName:
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}
