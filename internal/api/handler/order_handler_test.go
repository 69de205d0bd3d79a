package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

const orderID = "dddddddddddddddddddddddd"

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:         orderID,
		CustomerID: customerID,
		Items:      []domain.OrderItem{{Product: testProduct.Snapshot(), Quantity: 2}},
		CreatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestOrderHandler_Create(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{
		createFn: func(_ context.Context, actor *domain.User, in ports.CreateOrderInput) (*domain.Order, error) {
			assert.Equal(t, customerID, actor.ID)
			require.Len(t, in.Items, 1)
			assert.Equal(t, productID, in.Items[0].ProductID)
			assert.Equal(t, 2, in.Items[0].Quantity)
			return sampleOrder(), nil
		},
	})
	body := `{"items":[{"product":{"_id":"` + productID + `","name":"Widget","price":9.5},"quantity":2}]}`
	c, rec := newContext(t, http.MethodPost, "/api/orders", body, testCustomer)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customerId":"`+customerID+`"`)
}

func TestOrderHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no items", `{"items":[]}`, "items must contain at least 1 item(s)"},
		{"missing items", `{}`, "items is required"},
		{"zero quantity", `{"items":[{"product":{"_id":"x","name":"W","price":1},"quantity":0}]}`, "items[0].quantity must be greater than 0"},
		{"missing product id", `{"items":[{"product":{"name":"W","price":1},"quantity":1}]}`, "items[0].product._id is required"},
		{"free product", `{"items":[{"product":{"_id":"x","name":"W","price":0},"quantity":1}]}`, "items[0].product.price must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrderHandler(&stubOrderService{})
			c, _ := newContext(t, http.MethodPost, "/api/orders", tt.body, testCustomer)
			err := h.Create(c)
			assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOrderHandler_List_PassesActor(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{
		listFn: func(_ context.Context, actor *domain.User) ([]*domain.Order, error) {
			assert.Equal(t, customerID, actor.ID)
			return []*domain.Order{sampleOrder()}, nil
		},
	})
	c, rec := newContext(t, http.MethodGet, "/api/orders", "", testCustomer)
	require.NoError(t, h.List(c))
	assert.Contains(t, rec.Body.String(), orderID)
}

func TestOrderHandler_Get_Hidden(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{
		getFn: func(context.Context, *domain.User, string) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	})
	c, _ := newContext(t, http.MethodGet, "/api/orders/"+orderID, "", testCustomer)
	assert.ErrorIs(t, h.Get(withID(c, orderID)), domain.ErrOrderNotFound)
}
