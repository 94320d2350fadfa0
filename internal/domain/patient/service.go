package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("patient not found")
	ErrAlreadyQueued    = errors.New("patient is already waiting or in consultation")
	ErrNotWaiting       = errors.New("patient is not in the waiting queue")
	ErrRoomOccupied     = errors.New("another patient is already in consultation")
	ErrNotInConsult     = errors.New("patient is not in consultation")
	ErrFollowUpReason   = errors.New("a follow-up visit requires a reason")
	ErrUnscheduledQueue = errors.New("queue date may not be in the future")
)

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Location returns the clinic calendar used for day bucketing.
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.Surname == "" {
		return fmt.Errorf("first name and surname are required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("date of birth is required")
	}
	if !ValidSex(p.Sex) {
		return fmt.Errorf("sex must be Male or Female, got %q", p.Sex)
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = PaymentCash
	}
	if !ValidPaymentMethod(p.PaymentMethod) {
		return fmt.Errorf("invalid payment method: %s", p.PaymentMethod)
	}
	// A newly registered patient is not in any queue bucket.
	p.ConsultationStatus = StatusNone
	p.VisitType = VisitRegular
	p.LastStatusChange = nil
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if !ValidSex(p.Sex) {
		return fmt.Errorf("sex must be Male or Female, got %q", p.Sex)
	}
	if !ValidPaymentMethod(p.PaymentMethod) {
		return fmt.Errorf("invalid payment method: %s", p.PaymentMethod)
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List fetches the full patient list and runs it through the filter/sort
// pipeline. Derivation over the wholesale list keeps list views, queue views,
// and exports consistent with each other between reloads.
func (s *Service) List(ctx context.Context, params PipelineParams) ([]*Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if params.Now.IsZero() {
		params.Now = s.now()
	}
	if params.Loc == nil {
		params.Loc = s.loc
	}
	return ApplyPipeline(patients, params), nil
}

// Queue derives the day's waiting / in-consultation / served buckets for the
// given reference date.
func (s *Service) Queue(ctx context.Context, ref time.Time) (Queue, error) {
	if ref.In(s.loc).After(s.now().In(s.loc)) && !SameDay(ref, s.now(), s.loc) {
		return Queue{}, ErrUnscheduledQueue
	}
	patients, err := s.repo.List(ctx)
	if err != nil {
		return Queue{}, err
	}
	return DeriveQueue(patients, ref, s.loc), nil
}

// CheckIn places a patient in the waiting queue for a regular visit.
// Valid only when the patient is not already waiting or in consultation.
func (s *Service) CheckIn(ctx context.Context, id uuid.UUID) error {
	return s.enqueue(ctx, id, VisitRegular, nil)
}

// AddFollowUp places a patient in the waiting queue for a follow-up visit
// with the given reason.
func (s *Service) AddFollowUp(ctx context.Context, id uuid.UUID, reason string) error {
	if reason == "" {
		return ErrFollowUpReason
	}
	return s.enqueue(ctx, id, VisitFollowUp, &reason)
}

func (s *Service) enqueue(ctx context.Context, id uuid.UUID, visitType string, reason *string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if p.ConsultationStatus == StatusWaiting || p.ConsultationStatus == StatusInConsultation {
		return ErrAlreadyQueued
	}

	ok, err := s.repo.SetWaiting(ctx, id, visitType, reason, s.now())
	if err != nil {
		return fmt.Errorf("check in: %w", err)
	}
	if !ok {
		// Lost a race with another terminal between the read and the write.
		return ErrAlreadyQueued
	}
	return nil
}

// StartConsultation moves a waiting patient into the consultation room.
// Single occupancy is a hard invariant: the conditional update refuses the
// transition while any other patient is in consultation, regardless of what
// the caller's (possibly stale) view showed.
func (s *Service) StartConsultation(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if p.ConsultationStatus != StatusWaiting {
		return ErrNotWaiting
	}

	ok, err := s.repo.StartConsultation(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("start consultation: %w", err)
	}
	if !ok {
		// The guarded update refused: either the patient left the waiting
		// state or the room is occupied. The occupancy count tells which.
		if n, cerr := s.repo.CountInConsultation(ctx); cerr == nil && n > 0 {
			return ErrRoomOccupied
		}
		return ErrNotWaiting
	}
	return nil
}

// CompleteConsultation marks the in-consultation patient as served. It is
// called directly or implicitly when a consultation note is filed.
func (s *Service) CompleteConsultation(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if p.ConsultationStatus != StatusInConsultation {
		return ErrNotInConsult
	}

	ok, err := s.repo.CompleteConsultation(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("complete consultation: %w", err)
	}
	if !ok {
		return ErrNotInConsult
	}
	return nil
}
