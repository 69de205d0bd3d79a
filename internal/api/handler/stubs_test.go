package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/api/middleware"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

const (
	adminID    = "aaaaaaaaaaaaaaaaaaaaaaaa"
	customerID = "cccccccccccccccccccccccc"
)

var (
	testAdmin    = &domain.User{ID: adminID, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	testCustomer = &domain.User{ID: customerID, Name: "Carol", Email: "carol@example.com", Role: domain.RoleCustomer}
)

// newContext builds an echo context for a JSON request. A nil actor leaves
// the request unauthenticated.
func newContext(t *testing.T, method, target, body string, actor *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ContextKeyUser, actor)
		c.Set(middleware.ContextKeyRole, actor.Role)
	}
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

// --- user service ---

type stubUserService struct {
	registerFn   func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	listFn       func(ctx context.Context) ([]*domain.User, error)
	getFn        func(ctx context.Context, id string) (*domain.User, error)
	updateRoleFn func(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error)
	deleteFn     func(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error) {
	return s.updateRoleFn(ctx, actor, id, role)
}

func (s *stubUserService) Delete(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	return s.deleteFn(ctx, actor, id)
}

// --- product service ---

type stubProductService struct {
	listFn   func(ctx context.Context) ([]*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	createFn func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) (*domain.Product, error)
}

func (s *stubProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	return s.deleteFn(ctx, id)
}

// --- order service ---

type stubOrderService struct {
	listFn   func(ctx context.Context, actor *domain.User) ([]*domain.Order, error)
	getFn    func(ctx context.Context, actor *domain.User, id string) (*domain.Order, error)
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateOrderInput) (*domain.Order, error)
}

func (s *stubOrderService) List(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	return s.listFn(ctx, actor)
}

func (s *stubOrderService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubOrderService) Create(ctx context.Context, actor *domain.User, in ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, actor, in)
}

// --- auth service ---

type stubAuthService struct {
	token string
	err   error
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) IssueToken(*domain.User) (string, error) { return s.token, s.err }

func (s *stubAuthService) AuthenticateToken(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}
