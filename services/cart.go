package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
)

// ProductFinder resolves products for cart validation and price lookups.
type ProductFinder interface {
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// CartStore persists carts, one document per user.
type CartStore interface {
	// FindByUser returns ErrCartNotFound when the user has no cart yet.
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Insert(ctx context.Context, cart *models.Cart) error
	UpdateItems(ctx context.Context, cartID primitive.ObjectID, items []models.CartItem) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// CartService manages a user's pre-checkout cart.
type CartService struct {
	Products ProductFinder
	Carts    CartStore
}

func NewCartService(products ProductFinder, carts CartStore) *CartService {
	return &CartService{Products: products, Carts: carts}
}

// AddItem adds quantity of a product to the user's cart, creating the
// cart if needed. Re-adding a product increments the existing line rather
// than replacing it.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if _, err := s.Products.FindProduct(ctx, productID); err != nil {
		return err
	}

	cart, err := s.Carts.FindByUser(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		cart = &models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: productID, Quantity: quantity}},
		}
		if err := s.Carts.Insert(ctx, cart); err != nil {
			return fmt.Errorf("creating cart: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	updated := false
	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items[i].Quantity += quantity
			updated = true
			break
		}
	}
	if !updated {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.Carts.UpdateItems(ctx, cart.ID, cart.Items); err != nil {
		return fmt.Errorf("updating cart: %w", err)
	}
	return nil
}

// SetQuantity replaces the quantity on an existing cart line. The line
// must already exist; use AddItem to introduce a product.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	cart, err := s.Carts.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items[i].Quantity = quantity
			if err := s.Carts.UpdateItems(ctx, cart.ID, cart.Items); err != nil {
				return fmt.Errorf("updating cart: %w", err)
			}
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem removes a product from the user's cart. Removing a product
// that is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	cart, err := s.Carts.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	updatedItems := []models.CartItem{}
	for _, item := range cart.Items {
		if item.ProductID != productID {
			updatedItems = append(updatedItems, item)
		}
	}
	if len(updatedItems) == len(cart.Items) {
		return nil
	}

	if err := s.Carts.UpdateItems(ctx, cart.ID, updatedItems); err != nil {
		return fmt.Errorf("updating cart: %w", err)
	}
	return nil
}

// GetCart returns the user's cart with product details resolved. A user
// with no cart gets an empty view, not an error. Lines whose product has
// since been deleted are skipped.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error) {
	view := &models.CartView{Items: []models.CartViewItem{}}

	cart, err := s.Carts.FindByUser(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, err
	}

	for _, item := range cart.Items {
		product, err := s.Products.FindProduct(ctx, item.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		unit := product.EffectivePrice()
		line := unit * float64(item.Quantity)
		view.Items = append(view.Items, models.CartViewItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			UnitPrice: unit,
			Quantity:  item.Quantity,
			LineTotal: line,
		})
		view.Subtotal += line
	}
	return view, nil
}
