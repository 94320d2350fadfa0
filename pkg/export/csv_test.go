package export

import (
	"strings"
	"testing"
)

func TestWriteCSV_FixedHeaderOrder(t *testing.T) {
	table := NewTable("First Name", "Surname", "ID Number")
	if err := table.Append("Jane", "Doe", "9001015009087"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sb strings.Builder
	if err := table.WriteCSV(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "First Name,Surname,ID Number" {
		t.Errorf("unexpected header order: %q", lines[0])
	}
	if lines[1] != "Jane,Doe,9001015009087" {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestAppend_RejectsWrongArity(t *testing.T) {
	table := NewTable("a", "b")
	if err := table.Append("only-one"); err == nil {
		t.Fatal("expected error for wrong value count")
	}
}

func TestWriteCSV_QuotesCommas(t *testing.T) {
	table := NewTable("name", "address")
	if err := table.Append("Jane", "12 Main Rd, Cape Town"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sb strings.Builder
	if err := table.WriteCSV(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sb.String(), `"12 Main Rd, Cape Town"`) {
		t.Errorf("expected quoted field, got %q", sb.String())
	}
}
