package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123", "employer")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleEmployer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_NormalizesRoleSpellings(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.Role
	}{
		{"jobseeker", domain.RoleJobSeeker},
		{"JobSeeker", domain.RoleJobSeeker},
		{"Job Seeker", domain.RoleJobSeeker},
		{"job-seeker", domain.RoleJobSeeker},
		{"job_seeker", domain.RoleJobSeeker},
		{"Employer", domain.RoleEmployer},
		{"ADMIN", domain.RoleAdmin},
		{"Administrator", domain.RoleAdmin},
	}

	for i, tc := range cases {
		repo := newStubAuthRepo()
		svc := NewAuthService(repo, "secret", time.Hour)

		user, err := svc.Register(context.Background(), "user", "u@example.com", "pass", tc.raw)
		if err != nil {
			t.Fatalf("case %d (%q): unexpected error: %v", i, tc.raw, err)
		}
		if user.Role != tc.want {
			t.Errorf("case %d (%q): expected role %q, got %q", i, tc.raw, tc.want, user.Role)
		}
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass", "superuser"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "", "", "pass", "employer"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "bob", "bob@example.com", "pass", "employer")
	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass2", "employer"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret", "admin"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "admin" {
		t.Errorf("expected role claim %q, got %v", "admin", claims["role"])
	}
	if claims["username"] != "carol" {
		t.Errorf("expected username claim %q, got %v", "carol", claims["username"])
	}
}

func TestAuthService_Login_ByUsername(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "dave", "dave@example.com", "hunter2", "jobseeker")

	if _, _, err := svc.Login(context.Background(), "dave", "hunter2"); err != nil {
		t.Fatalf("login by username failed: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "erin", "erin@example.com", "right", "jobseeker")

	if _, _, err := svc.Login(context.Background(), "erin", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	created, _ := svc.Register(context.Background(), "frank", "frank@example.com", "pass", "employer")

	user, err := svc.Me(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if user.Username != "frank" {
		t.Errorf("expected username %q, got %q", "frank", user.Username)
	}
}
