package payment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/platform/blobstore"
)

var (
	ErrNotFound       = errors.New("payment not found")
	ErrPatientUnknown = errors.New("patient not found")
	ErrBadAmount      = errors.New("amount must be positive")
	ErrBadMethod      = errors.New("payment method must be cash or medical_aid")
)

type Service struct {
	repo     Repository
	patients *patient.Service
	blobs    blobstore.Store
}

func NewService(repo Repository, patients *patient.Service, blobs blobstore.Store) *Service {
	return &Service{repo: repo, patients: patients, blobs: blobs}
}

// ProofUpload carries an optional proof-of-payment file alongside a payment.
type ProofUpload struct {
	FileName    string
	ContentType string
	Content     io.Reader
	UploadedBy  string
}

// Record validates and stores a payment. When a proof file is supplied it is
// stored first and the payment references the resulting blob, so a payment
// row never points at a blob that failed to upload.
func (s *Service) Record(ctx context.Context, p *Payment, proof *ProofUpload) error {
	if p.AmountCents <= 0 {
		return ErrBadAmount
	}
	if !ValidMethod(p.Method) {
		return ErrBadMethod
	}
	if _, err := s.patients.Get(ctx, p.PatientID); err != nil {
		return ErrPatientUnknown
	}

	if proof != nil {
		meta, err := s.blobs.Put(ctx, blobstore.Metadata{
			FileName:    proof.FileName,
			ContentType: proof.ContentType,
			Category:    blobstore.CategoryPaymentProof,
			UploadedBy:  proof.UploadedBy,
		}, proof.Content)
		if err != nil {
			return fmt.Errorf("store proof: %w", err)
		}
		p.ProofBlobID = &meta.ID
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Payment, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, ErrPatientUnknown
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) List(ctx context.Context) ([]*Payment, error) {
	return s.repo.List(ctx)
}

// Proof streams the stored proof file for a payment.
func (s *Service) Proof(ctx context.Context, id uuid.UUID) (io.ReadCloser, *blobstore.Metadata, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	if p.ProofBlobID == nil {
		return nil, nil, blobstore.ErrNotFound
	}
	return s.blobs.Get(ctx, *p.ProofBlobID)
}
