package consultation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
)

var (
	ErrNotFound       = errors.New("consultation note not found")
	ErrPatientUnknown = errors.New("patient not found")
	ErrEmptyNote      = errors.New("a note needs a reason for visit and some content")
)

type Service struct {
	repo     Repository
	patients *patient.Service
	now      func() time.Time
}

func NewService(repo Repository, patients *patient.Service) *Service {
	return &Service{repo: repo, patients: patients, now: time.Now}
}

// Create files a note for a patient. When the patient is currently in
// consultation, filing the note also marks the visit served, so the doctor
// never has to complete the visit as a separate step.
func (s *Service) Create(ctx context.Context, n *Note) error {
	if n.ReasonForVisit == "" {
		return ErrEmptyNote
	}
	n.Sanitize()
	if !s.hasContent(n) {
		return ErrEmptyNote
	}
	p, err := s.patients.Get(ctx, n.PatientID)
	if err != nil {
		return ErrPatientUnknown
	}
	if n.NoteDate.IsZero() {
		n.NoteDate = s.now()
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	if p.ConsultationStatus == patient.StatusInConsultation {
		if err := s.patients.CompleteConsultation(ctx, n.PatientID); err != nil &&
			!errors.Is(err, patient.ErrNotInConsult) {
			return fmt.Errorf("complete visit on note: %w", err)
		}
	}
	return nil
}

func (s *Service) hasContent(n *Note) bool {
	for _, f := range []*string{n.Subjective, n.Objective, n.Assessment, n.Plan, n.ClinicalNotes} {
		if f != nil && *f != "" {
			return true
		}
	}
	return false
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, n *Note) error {
	existing, err := s.repo.GetByID(ctx, n.ID)
	if err != nil {
		return ErrNotFound
	}
	if n.ReasonForVisit == "" {
		return ErrEmptyNote
	}
	n.Sanitize()
	// Ownership fields never change on update.
	n.PatientID = existing.PatientID
	n.DoctorID = existing.DoctorID
	return s.repo.Update(ctx, n)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Note, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, ErrPatientUnknown
	}
	return s.repo.ListByPatient(ctx, patientID)
}
