package reporting

import (
	"strings"
	"testing"
)

func TestPredefinedMeasures(t *testing.T) {
	expectedIDs := []string{
		"patients-today",
		"queue-throughput",
		"payment-method-split",
		"practice-activity",
	}
	if len(PredefinedMeasures) != len(expectedIDs) {
		t.Fatalf("expected %d predefined measures, got %d", len(expectedIDs), len(PredefinedMeasures))
	}
	for i, expectedID := range expectedIDs {
		if PredefinedMeasures[i].ID != expectedID {
			t.Errorf("measure[%d].ID = %s, want %s", i, PredefinedMeasures[i].ID, expectedID)
		}
	}
}

func TestPredefinedMeasures_HaveSQL(t *testing.T) {
	for _, m := range PredefinedMeasures {
		if m.SQL == "" {
			t.Errorf("measure %s has empty SQL", m.ID)
		}
		if m.Name == "" {
			t.Errorf("measure %s has empty name", m.ID)
		}
		if m.Description == "" {
			t.Errorf("measure %s has empty description", m.ID)
		}
	}
}

func TestFindMeasure(t *testing.T) {
	m := FindMeasure("queue-throughput")
	if m == nil {
		t.Fatal("expected to find queue-throughput measure")
	}
	if m.Name != "Queue Throughput" {
		t.Errorf("name = %s", m.Name)
	}
	if FindMeasure("nonexistent") != nil {
		t.Error("expected nil for nonexistent measure")
	}
}

func TestFindMeasure_AllPredefined(t *testing.T) {
	for _, def := range PredefinedMeasures {
		found := FindMeasure(def.ID)
		if found == nil {
			t.Errorf("expected to find measure %s", def.ID)
			continue
		}
		if found.ID != def.ID {
			t.Errorf("ID mismatch: want %s, got %s", def.ID, found.ID)
		}
	}
}

func TestMeasures_QueryClinicTables(t *testing.T) {
	// Every measure must read from the clinic schema, nothing else.
	allowed := []string{"patient", "payment"}
	for _, m := range PredefinedMeasures {
		hit := false
		for _, table := range allowed {
			if strings.Contains(m.SQL, "FROM "+table) {
				hit = true
			}
		}
		if !hit {
			t.Errorf("measure %s does not query a known table: %s", m.ID, m.SQL)
		}
	}
}

func TestNewHandler(t *testing.T) {
	if NewHandler(nil) == nil {
		t.Fatal("expected non-nil handler")
	}
}
