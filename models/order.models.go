package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. The transition graph is deliberately unrestricted:
// an admin may move an order between any two of these values.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Payment methods accepted at checkout
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// ValidStatus reports whether s is one of the recognized order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard
}

// OrderItem is a cart line frozen at checkout. PriceAtTime is the unit
// price captured when the order was created and is never recomputed.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name        string             `bson:"name" json:"name"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	PriceAtTime float64            `bson:"price_at_time" json:"price_at_time"`
}

// Order represents a placed order. Immutable after creation except for
// Status and TrackingNumber.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	ShippingAddress string             `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod   string             `bson:"payment_method" json:"payment_method"`
	Status          string             `bson:"status" json:"status"`
	TrackingNumber  string             `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// AdminOrder is an order with its owner resolved for the admin listing
type AdminOrder struct {
	Order     `bson:",inline"`
	UserName  string `bson:"-" json:"user_name"`
	UserEmail string `bson:"-" json:"user_email"`
}
