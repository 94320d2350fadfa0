package patient

import (
	"testing"
	"time"
)

func TestPatient_Age(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday passed this year", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 36},
		{"birthday later this year", time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC), 35},
		{"birthday today", time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC), 36},
		{"newborn", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 0},
		{"future dob clamps to zero", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Patient{DateOfBirth: tt.dob}
			if got := p.Age(now); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPatient_QueueTime(t *testing.T) {
	change := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	p := &Patient{LastStatusChange: &change, CreatedAt: created}
	if ts, ok := p.QueueTime(); !ok || !ts.Equal(change) {
		t.Errorf("QueueTime() = %v, %v; want last status change", ts, ok)
	}

	p = &Patient{CreatedAt: created}
	if ts, ok := p.QueueTime(); !ok || !ts.Equal(created) {
		t.Errorf("QueueTime() = %v, %v; want registration time", ts, ok)
	}

	p = &Patient{}
	if _, ok := p.QueueTime(); ok {
		t.Error("QueueTime() on a patient with no timestamps must report false")
	}
}

func TestPatient_FullName(t *testing.T) {
	p := &Patient{FirstName: "Alice", Surname: "Adams"}
	if got := p.FullName(); got != "Alice Adams" {
		t.Errorf("FullName() = %q", got)
	}
}

func TestValidators(t *testing.T) {
	if !ValidStatus(StatusInConsultation) || ValidStatus("busy") {
		t.Error("ValidStatus accepts the known set only")
	}
	if !ValidSex("Male") || ValidSex("male") {
		t.Error("ValidSex is exact match")
	}
	if !ValidPaymentMethod(PaymentMedicalAid) || ValidPaymentMethod("card") {
		t.Error("ValidPaymentMethod accepts cash and medical_aid only")
	}
}
