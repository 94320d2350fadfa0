package practice

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("practice not found")
	ErrCodeImmutable = errors.New("practice code cannot change after creation")
	ErrCodeTaken     = errors.New("practice code is already in use")
	ErrBadStatus     = errors.New("status must be active or inactive")
)

// Practice codes are short uppercase alphanumerics, e.g. "PR001".
var codePattern = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Practice) error {
	if p.Name == "" {
		return fmt.Errorf("practice name is required")
	}
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if !codePattern.MatchString(p.Code) {
		return fmt.Errorf("invalid practice code %q", p.Code)
	}
	if existing, err := s.repo.GetByCode(ctx, p.Code); err == nil && existing != nil {
		return ErrCodeTaken
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if !ValidStatus(p.Status) {
		return ErrBadStatus
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Practice, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Update changes a practice's details. The code is immutable: an update that
// tries to change it is rejected outright rather than silently ignored.
func (s *Service) Update(ctx context.Context, p *Practice) error {
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return ErrNotFound
	}
	if p.Code != "" && !strings.EqualFold(p.Code, existing.Code) {
		return ErrCodeImmutable
	}
	if p.Name == "" {
		return fmt.Errorf("practice name is required")
	}
	p.Code = existing.Code
	p.Status = existing.Status
	return s.repo.Update(ctx, p)
}

// SetStatus toggles a practice between active and inactive. Practices are
// never hard-deleted.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidStatus(status) {
		return ErrBadStatus
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *Service) List(ctx context.Context) ([]*Practice, error) {
	return s.repo.List(ctx)
}
