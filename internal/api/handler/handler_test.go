package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sps/users-api/internal/api/middleware"
	"github.com/sps/users-api/internal/core/domain"
	"github.com/sps/users-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubUserService struct {
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	listFn   func(ctx context.Context, p *domain.Principal) ([]*domain.User, error)
	getFn    func(ctx context.Context, p *domain.Principal, id string) (*domain.User, error)
	updateFn func(ctx context.Context, p *domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, p *domain.Principal, id string) error
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context, p *domain.Principal) ([]*domain.User, error) {
	return s.listFn(ctx, p)
}

func (s *stubUserService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.User, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubUserService) Update(ctx context.Context, p *domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, p, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context. A non-nil principal simulates the
// Auth middleware having run.
func newContext(e *echo.Echo, method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set(middleware.ContextUserID, p.Subject)
		c.Set(middleware.ContextEmail, p.Email)
		c.Set(middleware.ContextRole, string(p.Role))
	}
	return c, rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

var sampleUser = &domain.User{
	ID:           "u-1",
	Name:         "Bob",
	Email:        "bob@ex.com",
	Role:         domain.RoleUser,
	PasswordHash: "$2a$10$hash",
}
