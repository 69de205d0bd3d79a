package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/storefront/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoProductSnapshot struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	Price       float64 `bson:"price"`
	Description string  `bson:"description,omitempty"`
}

type mongoOrderItem struct {
	Product  mongoProductSnapshot `bson:"product"`
	Quantity int                  `bson:"quantity"`
}

type mongoOrder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID primitive.ObjectID `bson:"customerId"`
	Items      []mongoOrderItem   `bson:"items"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (mo *mongoOrder) toDomain() *domain.Order {
	items := make([]domain.OrderItem, len(mo.Items))
	for i, it := range mo.Items {
		items[i] = domain.OrderItem{
			Product: domain.ProductSnapshot{
				ID:          it.Product.ID,
				Name:        it.Product.Name,
				Price:       it.Product.Price,
				Description: it.Product.Description,
			},
			Quantity: it.Quantity,
		}
	}
	return &domain.Order{
		ID:         mo.ID.Hex(),
		CustomerID: mo.CustomerID.Hex(),
		Items:      items,
		CreatedAt:  mo.CreatedAt.UTC(),
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	customerID, err := primitive.ObjectIDFromHex(o.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer id", domain.ErrInvalidInput)
	}

	doc := mongoOrder{
		CustomerID: customerID,
		Items:      make([]mongoOrderItem, len(o.Items)),
		CreatedAt:  o.CreatedAt,
	}
	for i, it := range o.Items {
		doc.Items[i] = mongoOrderItem{
			Product: mongoProductSnapshot{
				ID:          it.Product.ID,
				Name:        it.Product.Name,
				Price:       it.Product.Price,
				Description: it.Product.Description,
			},
			Quantity: it.Quantity,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

// List returns all orders, or only customerID's when it is non-empty.
func (r *OrderRepository) List(ctx context.Context, customerID string) ([]*domain.Order, error) {
	filter := bson.M{}
	if customerID != "" {
		oid, err := primitive.ObjectIDFromHex(customerID)
		if err != nil {
			return []*domain.Order{}, nil
		}
		filter["customerId"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toDomain())
	}
	return orders, nil
}

// EnsureIndexes creates the customer lookup index.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}
