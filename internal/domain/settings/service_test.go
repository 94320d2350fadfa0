package settings

import (
	"context"
	"errors"
	"testing"
)

type mockRepo struct {
	values  map[string]string
	failing bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{values: make(map[string]string)}
}

func (m *mockRepo) GetAll(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *mockRepo) ReplaceAll(_ context.Context, values map[string]string) error {
	if m.failing {
		return errors.New("write failed")
	}
	m.values = make(map[string]string, len(values))
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func validSettings() map[string]string {
	return map[string]string{
		KeySystemName:            "Main Street Clinic",
		KeyRequireStrongPassword: "false",
		KeySessionTimeout:        "60",
		KeyMaxLoginAttempts:      "3",
		KeyEnableAuditLog:        "true",
	}
}

func TestService_GetBackfillsDefaults(t *testing.T) {
	repo := newMockRepo()
	repo.values[KeySystemName] = "Custom Name"
	svc := NewService(repo, nil)

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got[KeySystemName] != "Custom Name" {
		t.Errorf("stored value not used: %q", got[KeySystemName])
	}
	if got[KeySessionTimeout] != Defaults()[KeySessionTimeout] {
		t.Errorf("missing key not defaulted: %q", got[KeySessionTimeout])
	}
}

func TestService_ReplaceWholesale(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	if err := svc.Replace(ctx, validSettings()); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if repo.values[KeyMaxLoginAttempts] != "3" {
		t.Errorf("replace did not persist: %v", repo.values)
	}
}

func TestService_ReplaceValidation(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"unknown key", func(v map[string]string) { v["theme_color"] = "blue" }},
		{"missing key", func(v map[string]string) { delete(v, KeyEnableAuditLog) }},
		{"bad boolean", func(v map[string]string) { v[KeyEnableAuditLog] = "yes" }},
		{"bad integer", func(v map[string]string) { v[KeySessionTimeout] = "soon" }},
		{"negative integer", func(v map[string]string) { v[KeyMaxLoginAttempts] = "-1" }},
		{"empty system name", func(v map[string]string) { v[KeySystemName] = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validSettings()
			tt.mutate(values)
			if err := svc.Replace(ctx, values); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestService_ReplaceFailureKeepsOldValues(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	if err := svc.Replace(ctx, validSettings()); err != nil {
		t.Fatal(err)
	}
	repo.failing = true

	next := validSettings()
	next[KeySystemName] = "Should Not Stick"
	if err := svc.Replace(ctx, next); err == nil {
		t.Fatal("expected write failure")
	}
	if repo.values[KeySystemName] != "Main Street Clinic" {
		t.Errorf("old values lost: %q", repo.values[KeySystemName])
	}
}
