package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

func TestUserHandler_Register_Success(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(_ context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			if in.Name != "Carol" || in.Email != "carol@example.com" || in.Password != "longenough1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: customerID, Name: in.Name, Email: in.Email, Role: domain.RoleCustomer, PasswordHash: "hash"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/api/register",
		`{"name":"Carol","email":"carol@example.com","password":"longenough1"}`, nil)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, customerID, body["_id"])
	assert.Equal(t, "customer", body["role"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "PasswordHash")
}

func TestUserHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"email":"a@example.com","password":"longenough1"}`, "name is required"},
		{"bad email", `{"name":"A","email":"nope","password":"longenough1"}`, "email must be a valid email"},
		{"short password", `{"name":"A","email":"a@example.com","password":"short"}`, "password must be at least 10 characters"},
		{"unknown role", `{"name":"A","email":"a@example.com","password":"longenough1","role":"root"}`, "role must be one of"},
		{"malformed json", `{"name":`, "invalid payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&stubUserService{
				registerFn: func(context.Context, ports.RegisterUserInput) (*domain.User, error) {
					t.Fatalf("service must not be called")
					return nil, nil
				},
			})
			c, _ := newContext(t, http.MethodPost, "/api/register", tt.body, nil)
			err := h.Register(c)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUserHandler_Register_EmailInUse(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		registerFn: func(context.Context, ports.RegisterUserInput) (*domain.User, error) {
			return nil, domain.ErrEmailInUse
		},
	})
	c, _ := newContext(t, http.MethodPost, "/api/register",
		`{"name":"Carol","email":"carol@example.com","password":"longenough1"}`, nil)
	assert.ErrorIs(t, h.Register(c), domain.ErrEmailInUse)
}

func TestUserHandler_List(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		listFn: func(context.Context) ([]*domain.User, error) {
			return []*domain.User{testAdmin, testCustomer}, nil
		},
	})
	c, rec := newContext(t, http.MethodGet, "/api/users", "", testAdmin)
	require.NoError(t, h.List(c))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestUserHandler_Get_RejectsMalformedID(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(context.Context, string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})
	for _, id := range []string{"short", "UPPERCASE1234", strings.Repeat("a", 25), "has-dash-1234"} {
		c, _ := newContext(t, http.MethodGet, "/api/users/"+id, "", testAdmin)
		err := h.Get(withID(c, id))
		assert.Equal(t, http.StatusNotFound, httpStatus(t, err), id)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(context.Context, string) (*domain.User, error) { return nil, domain.ErrUserNotFound },
	})
	c, _ := newContext(t, http.MethodGet, "/api/users/"+customerID, "", testAdmin)
	assert.ErrorIs(t, h.Get(withID(c, customerID)), domain.ErrUserNotFound)
}

func TestUserHandler_Update_PassesActorAndRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		updateRoleFn: func(_ context.Context, actor *domain.User, id, role string) (*domain.User, error) {
			assert.Equal(t, adminID, actor.ID)
			assert.Equal(t, customerID, id)
			assert.Equal(t, domain.RoleAdmin, role)
			u := *testCustomer
			u.Role = role
			return &u, nil
		},
	})
	c, rec := newContext(t, http.MethodPut, "/api/users/"+customerID, `{"role":"admin"}`, testAdmin)
	require.NoError(t, h.Update(withID(c, customerID)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestUserHandler_Update_ServiceErrorsPropagate(t *testing.T) {
	for _, want := range []error{domain.ErrUserNotFound, domain.ErrSelfModification, domain.ErrInvalidInput} {
		h := NewUserHandler(&stubUserService{
			updateRoleFn: func(context.Context, *domain.User, string, string) (*domain.User, error) {
				return nil, want
			},
		})
		c, _ := newContext(t, http.MethodPut, "/api/users/"+customerID, `{}`, testAdmin)
		assert.True(t, errors.Is(h.Update(withID(c, customerID)), want), want.Error())
	}
}

func TestUserHandler_Delete(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		deleteFn: func(_ context.Context, actor *domain.User, id string) (*domain.User, error) {
			assert.Equal(t, adminID, actor.ID)
			return testCustomer, nil
		},
	})
	c, rec := newContext(t, http.MethodDelete, "/api/users/"+customerID, "", testAdmin)
	require.NoError(t, h.Delete(withID(c, customerID)))
	assert.Contains(t, rec.Body.String(), customerID)
}

func TestUserHandler_Delete_RequiresAuthenticatedUser(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newContext(t, http.MethodDelete, "/api/users/"+customerID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, h.Delete(withID(c, customerID))))
}
