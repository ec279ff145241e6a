package auth

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	users map[string]User
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (f *fakeStore) FindByID(_ context.Context, id string) (User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return User{}, ErrUserNotFound
}

func (f *fakeStore) Insert(_ context.Context, email, name, passwordHash, role string) (string, error) {
	id := "u-new"
	f.users[id] = User{ID: id, Email: email, Name: name, PasswordHash: passwordHash, Role: role}
	return id, nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store := &fakeStore{users: map[string]User{
		"u1": {ID: "u1", Email: "admin@example.com", Name: "Admin", PasswordHash: hash, Role: "admin"},
	}}
	return NewService(store, "test-signing-secret"), store
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, _ := newTestService(t)

	token, user, err := svc.Login(context.Background(), "admin@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := ParseToken("test-signing-secret", token)
	if err != nil {
		t.Fatalf("token did not parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must map to ErrInvalidCredentials, got %v", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc, _ := newTestService(t)

	token, _, err := svc.Login(context.Background(), "admin@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := ParseToken("different-secret", token); err == nil {
		t.Fatal("expected parse to fail with the wrong secret")
	}
}
