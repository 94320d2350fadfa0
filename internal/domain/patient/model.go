package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Consultation statuses. A patient moves none -> waiting -> in_consultation
// -> served; nothing moves out of served within the same day's queue view.
const (
	StatusNone           = "none"
	StatusWaiting        = "waiting"
	StatusInConsultation = "in_consultation"
	StatusServed         = "served"
)

// Visit types.
const (
	VisitRegular  = "regular"
	VisitFollowUp = "follow_up"
)

// Payment methods.
const (
	PaymentCash       = "cash"
	PaymentMedicalAid = "medical_aid"
)

// ValidStatus reports whether s is a known consultation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNone, StatusWaiting, StatusInConsultation, StatusServed:
		return true
	}
	return false
}

// ValidSex reports whether s is an accepted sex value.
func ValidSex(s string) bool {
	return s == "Male" || s == "Female"
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentMedicalAid
}

// Patient maps to the patient table.
type Patient struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	IDNumber           string     `db:"id_number" json:"id_number"`
	IDType             string     `db:"id_type" json:"id_type"`
	FirstName          string     `db:"first_name" json:"first_name"`
	Surname            string     `db:"surname" json:"surname"`
	DateOfBirth        time.Time  `db:"date_of_birth" json:"date_of_birth"`
	Sex                string     `db:"sex" json:"sex"`
	Phone              *string    `db:"phone" json:"phone,omitempty"`
	Email              *string    `db:"email" json:"email,omitempty"`
	Address            *string    `db:"address" json:"address,omitempty"`
	EmergencyName      *string    `db:"emergency_name" json:"emergency_name,omitempty"`
	EmergencyPhone     *string    `db:"emergency_phone" json:"emergency_phone,omitempty"`
	MedicalAidScheme   *string    `db:"medical_aid_scheme" json:"medical_aid_scheme,omitempty"`
	MedicalAidNumber   *string    `db:"medical_aid_number" json:"medical_aid_number,omitempty"`
	MedicalHistory     *string    `db:"medical_history" json:"medical_history,omitempty"`
	ConsultationStatus string     `db:"consultation_status" json:"consultation_status"`
	VisitType          string     `db:"visit_type" json:"visit_type"`
	VisitReason        *string    `db:"visit_reason" json:"visit_reason,omitempty"`
	PaymentMethod      string     `db:"payment_method" json:"payment_method"`
	LastStatusChange   *time.Time `db:"last_status_change" json:"last_status_change,omitempty"`
	PracticeCode       string     `db:"practice_code" json:"practice_code"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name used in queue views and exports.
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.Surname)
}

// Age returns the patient's age in whole years at the given instant.
// Derived from date of birth at comparison time, never stored.
func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// QueueTime returns the timestamp that positions the patient in queue views:
// the last status change when present, the registration time otherwise. The
// second return is false when the patient has neither and therefore belongs
// in no bucket.
func (p *Patient) QueueTime() (time.Time, bool) {
	if p.LastStatusChange != nil {
		return *p.LastStatusChange, true
	}
	if !p.CreatedAt.IsZero() {
		return p.CreatedAt, true
	}
	return time.Time{}, false
}
