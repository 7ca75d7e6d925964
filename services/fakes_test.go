package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
)

// In-memory stores backing the service tests.

type fakeProducts struct {
	products map[primitive.ObjectID]models.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeProducts) add(p models.Product) primitive.ObjectID {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = p
	return p.ID
}

func (f *fakeProducts) setPrice(id primitive.ObjectID, price float64) {
	p := f.products[id]
	p.Price = price
	f.products[id] = p
}

func (f *fakeProducts) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

type fakeCarts struct {
	carts     map[primitive.ObjectID]*models.Cart // keyed by cart ID
	deleteErr error
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (f *fakeCarts) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	for _, cart := range f.carts {
		if cart.UserID == userID {
			copied := *cart
			copied.Items = append([]models.CartItem(nil), cart.Items...)
			return &copied, nil
		}
	}
	return nil, ErrCartNotFound
}

func (f *fakeCarts) Insert(ctx context.Context, cart *models.Cart) error {
	cart.ID = primitive.NewObjectID()
	stored := *cart
	f.carts[cart.ID] = &stored
	return nil
}

func (f *fakeCarts) UpdateItems(ctx context.Context, cartID primitive.ObjectID, items []models.CartItem) error {
	cart, ok := f.carts[cartID]
	if !ok {
		return errors.New("no such cart")
	}
	cart.Items = append([]models.CartItem(nil), items...)
	return nil
}

func (f *fakeCarts) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for id, cart := range f.carts {
		if cart.UserID == userID {
			delete(f.carts, id)
		}
	}
	return nil
}

type fakeOrders struct {
	orders    map[primitive.ObjectID]*models.Order
	insertErr error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (f *fakeOrders) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	id := primitive.NewObjectID()
	stored := *order
	stored.ID = id
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	f.orders[id] = &stored
	return id, nil
}

func (f *fakeOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrders) FindAll(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrders) SetStatus(ctx context.Context, id primitive.ObjectID, status, trackingNumber string) error {
	order, ok := f.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	order.TrackingNumber = trackingNumber
	return nil
}

type fakeUsers struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[primitive.ObjectID]models.User)}
}

func (f *fakeUsers) add(u models.User) primitive.ObjectID {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = u
	return u.ID
}

func (f *fakeUsers) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}
