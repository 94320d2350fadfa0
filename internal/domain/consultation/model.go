package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Note maps to the consultation_note table. Early records used the structured
// SOAP columns; later records carry a single free-form clinical notes blob.
// Both column sets remain readable.
type Note struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	NoteDate       time.Time  `db:"note_date" json:"note_date"`
	ReasonForVisit string     `db:"reason_for_visit" json:"reason_for_visit"`
	ICD10Code      *string    `db:"icd10_code" json:"icd10_code,omitempty"`
	Subjective     *string    `db:"subjective" json:"subjective,omitempty"`
	Objective      *string    `db:"objective" json:"objective,omitempty"`
	Assessment     *string    `db:"assessment" json:"assessment,omitempty"`
	Plan           *string    `db:"plan" json:"plan,omitempty"`
	ClinicalNotes  *string    `db:"clinical_notes" json:"clinical_notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Sanitize strips script and markup content from every free-text field.
// Runs on create and update, so stored notes are clean regardless of which
// client wrote them.
func (n *Note) Sanitize() {
	n.ReasonForVisit = SanitizeText(n.ReasonForVisit)
	sanitizePtr(&n.Subjective)
	sanitizePtr(&n.Objective)
	sanitizePtr(&n.Assessment)
	sanitizePtr(&n.Plan)
	sanitizePtr(&n.ClinicalNotes)
}

func sanitizePtr(p **string) {
	if *p == nil {
		return
	}
	clean := SanitizeText(**p)
	*p = &clean
}
