package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
)

// OrderStore persists orders.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	// FindByID returns ErrOrderNotFound when no such order exists.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status, trackingNumber string) error
}

// UserFinder resolves order owners for the admin listing.
type UserFinder interface {
	FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID primitive.ObjectID
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// OrderService turns carts into orders and manages the order lifecycle.
type OrderService struct {
	Products ProductFinder
	Carts    CartStore
	Orders   OrderStore
	Users    UserFinder
}

func NewOrderService(products ProductFinder, carts CartStore, orders OrderStore, users UserFinder) *OrderService {
	return &OrderService{Products: products, Carts: carts, Orders: orders, Users: users}
}

// PlaceOrder checks out the user's cart. Each line's unit price is
// snapshotted from the product at this moment; later price changes do not
// touch the order. The order is inserted first and the cart deleted
// second, so a failed insert leaves the cart intact.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, shippingAddress, paymentMethod string) (*models.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrInvalidAddress
	}
	paymentMethod = strings.ToLower(strings.TrimSpace(paymentMethod))
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	cart, err := s.Carts.FindByUser(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          userID,
		Items:           make([]models.OrderItem, 0, len(cart.Items)),
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Status:          models.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	for _, item := range cart.Items {
		product, err := s.Products.FindProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		price := product.EffectivePrice()
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			Name:        product.Name,
			Quantity:    item.Quantity,
			PriceAtTime: price,
		})
		order.Total += price * float64(item.Quantity)
	}

	id, err := s.Orders.Insert(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("saving order: %w", err)
	}
	order.ID = id

	// The cart is only cleared once the order is durably saved. A failure
	// here leaves both the order and the cart behind; the next checkout
	// attempt would duplicate the order, an accepted risk at this tier.
	if err := s.Carts.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("clearing cart: %w", err)
	}
	return order, nil
}

// UpdateStatus overwrites an order's status. Admin only. Any recognized
// status may follow any other; no adjacency is enforced. A tracking
// number may be supplied with the update, and one is generated when an
// order moves to shipped without one.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID primitive.ObjectID, status, trackingNumber string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if trackingNumber == "" {
		trackingNumber = order.TrackingNumber
	}
	if status == models.StatusShipped && trackingNumber == "" {
		trackingNumber = uuid.NewString()
	}

	if err := s.Orders.SetStatus(ctx, orderID, status, trackingNumber); err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	order.Status = status
	order.TrackingNumber = trackingNumber
	return order, nil
}

// ListOrdersForUser returns the given user's orders.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.Orders.FindByUser(ctx, userID)
}

// ListAllOrders returns every order with its owner resolved. Admin only.
func (s *OrderService) ListAllOrders(ctx context.Context, actor Actor) ([]models.AdminOrder, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	orders, err := s.Orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.AdminOrder, 0, len(orders))
	for _, order := range orders {
		admin := models.AdminOrder{Order: order}
		if user, err := s.Users.FindUser(ctx, order.UserID); err == nil {
			admin.UserName = user.Name
			admin.UserEmail = user.Email
		}
		out = append(out, admin)
	}
	return out, nil
}
