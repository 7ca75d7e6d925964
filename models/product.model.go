package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog product
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	// DiscountPercent is a whole-number percentage off the price, 0-100.
	DiscountPercent int                `bson:"discount_percent" json:"discount_percent"`
	Stock           int                `bson:"stock" json:"stock"`
	CategoryID      primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	Featured        bool               `bson:"featured" json:"featured"`
	Active          bool               `bson:"active" json:"active"`
	Image           string             `bson:"image" json:"image"`
}

// EffectivePrice returns the unit price with the discount applied. This is
// the single place the discount is interpreted; cart views and order
// snapshots both go through it.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPercent <= 0 {
		return p.Price
	}
	if p.DiscountPercent >= 100 {
		return 0
	}
	return p.Price * (1 - float64(p.DiscountPercent)/100)
}

// Category groups products for browsing
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}
