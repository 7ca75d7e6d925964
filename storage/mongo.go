package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/models"
	"storefront/services"
)

// Stores bundles the mongo-backed implementations of the service store
// interfaces, one per collection.
type Stores struct {
	Products *ProductStore
	Carts    *CartStore
	Orders   *OrderStore
	Users    *UserStore
}

func NewStores(db *mongo.Database) *Stores {
	return &Stores{
		Products: &ProductStore{Collection: db.Collection("products")},
		Carts:    &CartStore{Collection: db.Collection("carts")},
		Orders:   &OrderStore{Collection: db.Collection("orders")},
		Users:    &UserStore{Collection: db.Collection("users")},
	}
}

// ProductStore reads products for cart and order operations
type ProductStore struct {
	Collection *mongo.Collection
}

func (s *ProductStore) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CartStore persists one cart document per user
type CartStore struct {
	Collection *mongo.Collection
}

func (s *CartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) Insert(ctx context.Context, cart *models.Cart) error {
	result, err := s.Collection.InsertOne(ctx, cart)
	if err != nil {
		return err
	}
	cart.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *CartStore) UpdateItems(ctx context.Context, cartID primitive.ObjectID, items []models.CartItem) error {
	_, err := s.Collection.UpdateOne(ctx, bson.M{"_id": cartID}, bson.M{"$set": bson.M{"items": items}})
	return err
}

func (s *CartStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.Collection.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// OrderStore persists orders
type OrderStore struct {
	Collection *mongo.Collection
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	result, err := s.Collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *OrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *OrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) SetStatus(ctx context.Context, id primitive.ObjectID, status, trackingNumber string) error {
	update := bson.M{"$set": bson.M{
		"status":          status,
		"tracking_number": trackingNumber,
	}}
	result, err := s.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrOrderNotFound
	}
	return nil
}

// UserStore resolves users for admin order listings
type UserStore struct {
	Collection *mongo.Collection
}

func (s *UserStore) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
