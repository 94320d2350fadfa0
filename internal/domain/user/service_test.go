package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *u
	return &cp, nil
}

func (m *mockRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("no rows")
}

func (m *mockRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return errors.New("no rows")
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func createTestUser(t *testing.T, svc *Service, username string) *User {
	t.Helper()
	u := &User{Name: "Dr Adams", Username: username, Role: auth.RoleDoctor, PracticeCode: "PR001"}
	if err := svc.Create(context.Background(), u, "correct horse battery"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return u
}

func TestService_Create(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	u := createTestUser(t, svc, "Adams")

	stored := repo.users[u.ID]
	if stored.Username != "adams" {
		t.Errorf("username = %q, want lowercased", stored.Username)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "correct horse battery" {
		t.Error("password must be stored as a hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse battery")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	u := &User{Name: "X", Username: "x", Role: "janitor"}
	if err := svc.Create(ctx, u, "long enough pw"); !errors.Is(err, ErrBadRole) {
		t.Errorf("bad role err = %v, want ErrBadRole", err)
	}
	u = &User{Name: "X", Username: "x", Role: auth.RoleAdmin}
	if err := svc.Create(ctx, u, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password err = %v, want ErrWeakPassword", err)
	}
}

func TestService_CreateRejectsDuplicateUsername(t *testing.T) {
	svc := NewService(newMockRepo())
	createTestUser(t, svc, "adams")

	u := &User{Name: "Other", Username: "ADAMS", Role: auth.RoleReceptionist}
	err := svc.Create(context.Background(), u, "another password")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestService_ResetPassword(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	u := createTestUser(t, svc, "adams")
	ctx := context.Background()

	if err := svc.ResetPassword(ctx, u.ID, "brand new password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "adams", "correct horse battery"); err == nil {
		t.Error("old password must stop working after reset")
	}
	if _, err := svc.Authenticate(ctx, "adams", "brand new password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	if err := svc.ResetPassword(ctx, uuid.New(), "whatever password"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	svc := NewService(newMockRepo())
	createTestUser(t, svc, "adams")
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, "  ADAMS  ", "correct horse battery"); err != nil {
		t.Errorf("Authenticate with unnormalized username: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "adams", "wrong"); err == nil {
		t.Error("wrong password must be rejected")
	}
	if _, err := svc.Authenticate(ctx, "ghost", "whatever"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user err = %v, want ErrNotFound", err)
	}
}
