package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/platform/blobstore"
)

type mockRepo struct {
	payments map[uuid.UUID]*Payment
}

func newMockRepo() *mockRepo {
	return &mockRepo{payments: make(map[uuid.UUID]*Payment)}
}

func (m *mockRepo) Create(_ context.Context, p *Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Payment, error) {
	var out []*Payment
	for _, p := range m.payments {
		if p.PatientID == patientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Payment, error) {
	var out []*Payment
	for _, p := range m.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// patientStub satisfies just enough of the patient repository for the
// service's existence checks.
type patientStub struct {
	ids map[uuid.UUID]bool
}

func (s *patientStub) Create(_ context.Context, p *patient.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.ids[p.ID] = true
	return nil
}

func (s *patientStub) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	if !s.ids[id] {
		return nil, errors.New("no rows")
	}
	return &patient.Patient{ID: id}, nil
}

func (s *patientStub) Update(_ context.Context, _ *patient.Patient) error { return nil }
func (s *patientStub) Delete(_ context.Context, _ uuid.UUID) error        { return nil }
func (s *patientStub) List(_ context.Context) ([]*patient.Patient, error) { return nil, nil }
func (s *patientStub) SetWaiting(_ context.Context, _ uuid.UUID, _ string, _ *string, _ time.Time) (bool, error) {
	return false, nil
}
func (s *patientStub) StartConsultation(_ context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
	return false, nil
}
func (s *patientStub) CompleteConsultation(_ context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
	return false, nil
}
func (s *patientStub) CountInConsultation(_ context.Context) (int, error) { return 0, nil }

func newTestService(t *testing.T) (*Service, uuid.UUID, *blobstore.MemoryStore) {
	t.Helper()
	stub := &patientStub{ids: make(map[uuid.UUID]bool)}
	p := &patient.Patient{}
	if err := stub.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	blobs := blobstore.NewMemoryStore()
	svc := NewService(newMockRepo(), patient.NewService(stub, time.UTC), blobs)
	return svc, p.ID, blobs
}

func TestService_Record(t *testing.T) {
	svc, patientID, _ := newTestService(t)
	ctx := context.Background()

	p := &Payment{PatientID: patientID, AmountCents: 45000, Method: MethodCash}
	if err := svc.Record(ctx, p, nil); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("payment must get an id")
	}
	if p.ProofBlobID != nil {
		t.Error("no proof given, blob id must stay nil")
	}
}

func TestService_RecordValidation(t *testing.T) {
	svc, patientID, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Record(ctx, &Payment{PatientID: patientID, AmountCents: 0, Method: MethodCash}, nil); !errors.Is(err, ErrBadAmount) {
		t.Errorf("zero amount err = %v, want ErrBadAmount", err)
	}
	if err := svc.Record(ctx, &Payment{PatientID: patientID, AmountCents: 100, Method: "card"}, nil); !errors.Is(err, ErrBadMethod) {
		t.Errorf("bad method err = %v, want ErrBadMethod", err)
	}
	if err := svc.Record(ctx, &Payment{PatientID: uuid.New(), AmountCents: 100, Method: MethodCash}, nil); !errors.Is(err, ErrPatientUnknown) {
		t.Errorf("unknown patient err = %v, want ErrPatientUnknown", err)
	}
}

func TestService_RecordWithProof(t *testing.T) {
	svc, patientID, blobs := newTestService(t)
	ctx := context.Background()

	p := &Payment{PatientID: patientID, AmountCents: 45000, Method: MethodMedicalAid}
	proof := &ProofUpload{
		FileName:    "eft.pdf",
		ContentType: "application/pdf",
		Content:     strings.NewReader("proof bytes"),
	}
	if err := svc.Record(ctx, p, proof); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if p.ProofBlobID == nil {
		t.Fatal("proof blob id must be set")
	}
	meta, err := blobs.Stat(ctx, *p.ProofBlobID)
	if err != nil {
		t.Fatalf("stored blob missing: %v", err)
	}
	if meta.Category != blobstore.CategoryPaymentProof {
		t.Errorf("category = %q", meta.Category)
	}
}

func TestService_RecordRejectsBadProof(t *testing.T) {
	svc, patientID, _ := newTestService(t)
	ctx := context.Background()

	p := &Payment{PatientID: patientID, AmountCents: 100, Method: MethodCash}
	proof := &ProofUpload{
		FileName:    "malware.exe",
		ContentType: "application/octet-stream",
		Content:     strings.NewReader("x"),
	}
	err := svc.Record(ctx, p, proof)
	if !errors.Is(err, blobstore.ErrInvalidContentType) {
		t.Fatalf("err = %v, want ErrInvalidContentType", err)
	}
	if len(mustList(t, svc, ctx)) != 0 {
		t.Error("failed proof upload must not record a payment")
	}
}

func mustList(t *testing.T, svc *Service, ctx context.Context) []*Payment {
	t.Helper()
	out, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestService_Proof(t *testing.T) {
	svc, patientID, _ := newTestService(t)
	ctx := context.Background()

	p := &Payment{PatientID: patientID, AmountCents: 100, Method: MethodCash}
	if err := svc.Record(ctx, p, nil); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Proof(ctx, p.ID); !errors.Is(err, blobstore.ErrNotFound) {
		t.Errorf("proofless payment err = %v, want blob ErrNotFound", err)
	}
	if _, _, err := svc.Proof(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown payment err = %v, want ErrNotFound", err)
	}
}
