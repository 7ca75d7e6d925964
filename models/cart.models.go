package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents an item in the cart
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart represents a user's shopping cart. There is at most one cart per
// user and at most one item per product; it is deleted outright when an
// order is placed from it.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items  []CartItem         `bson:"items" json:"items"`
}

// CartViewItem is a cart line with product details resolved
type CartViewItem struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Name      string             `json:"name"`
	UnitPrice float64            `json:"unit_price"`
	Quantity  int                `json:"quantity"`
	LineTotal float64            `json:"line_total"`
}

// CartView is the denormalized cart returned to clients. Items is always
// non-nil so an absent cart renders as an empty array.
type CartView struct {
	Items    []CartViewItem `json:"items"`
	Subtotal float64        `json:"subtotal"`
}
