package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods mirror the patient billing options.
const (
	MethodCash       = "cash"
	MethodMedicalAid = "medical_aid"
)

func ValidMethod(m string) bool {
	return m == MethodCash || m == MethodMedicalAid
}

// Payment maps to the payment table. Amounts are stored in cents to keep
// arithmetic exact.
type Payment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Method      string    `db:"method" json:"method"`
	ProofBlobID *string   `db:"proof_blob_id" json:"proof_blob_id,omitempty"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
