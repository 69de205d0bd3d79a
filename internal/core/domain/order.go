package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// ProductSnapshot is the product as it was when the order was placed.
type ProductSnapshot struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// OrderItem is a single order line.
type OrderItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Order is placed by a customer and owns its items.
type Order struct {
	ID         string      `json:"_id"`
	CustomerID string      `json:"customerId"`
	Items      []OrderItem `json:"items"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Total returns the sum of price * quantity over all items.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

// OwnedBy reports whether the order belongs to the given user.
func (o *Order) OwnedBy(userID string) bool {
	return o.CustomerID != "" && o.CustomerID == userID
}

// OrderEvent is emitted after an order has been persisted.
type OrderEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	ItemCount  int       `json:"item_count"`
	Total      float64   `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

const EventOrderCreated = "order.created"
