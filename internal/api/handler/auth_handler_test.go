package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, identifier, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, identifier, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password, role string) (*domain.User, error) {
			if username != "alice" || role != "Job Seeker" {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return &domain.User{ID: "u_1", Username: username, Email: email, Role: domain.RoleJobSeeker}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"a@example.com","password":"secret1","role":"Job Seeker"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "jobseeker" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"bob","email":"b@example.com","password":"secret1","role":"employer"}`)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password, role string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register", "not-json")

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password, role string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register", `{"username":"bob"}`)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, identifier, password string) (string, *domain.User, error) {
			if identifier != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", identifier, password)
			}
			return "token123", &domain.User{Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"identifier":"alice@example.com","password":"secret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, identifier, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"identifier":"alice","password":"bad"}`)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Me_RequiresClaims(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodGet, "/v1/users/me", "")

	err := handler.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u_1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: "u_1", Username: "alice", Role: domain.RoleEmployer}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet, "/v1/users/me", "")
	c.Set("user_id", "u_1")
	c.Set("role", "employer")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
