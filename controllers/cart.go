package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/services"
)

// CartController handles cart-related requests
type CartController struct {
	Carts *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func decodeCartItem(r *http.Request) (primitive.ObjectID, int, error) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return primitive.NilObjectID, 0, err
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return primitive.NilObjectID, 0, err
	}
	return productID, req.Quantity, nil
}

// AddToCart adds a quantity of a product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, quantity, err := decodeCartItem(r)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := cc.Carts.AddItem(ctx, userID, productID, quantity); err != nil {
		serviceError(w, err)
		return
	}

	cc.respondWithCart(ctx, w, userID)
}

// SetCartQuantity replaces the quantity on an existing cart line
func (cc *CartController) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, quantity, err := decodeCartItem(r)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := cc.Carts.SetQuantity(ctx, userID, productID, quantity); err != nil {
		serviceError(w, err)
		return
	}

	cc.respondWithCart(ctx, w, userID)
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["product_id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := cc.Carts.RemoveItem(ctx, userID, productID); err != nil {
		serviceError(w, err)
		return
	}

	cc.respondWithCart(ctx, w, userID)
}

// GetCart retrieves the user's cart with product details resolved
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	cc.respondWithCart(ctx, w, userID)
}

func (cc *CartController) respondWithCart(ctx context.Context, w http.ResponseWriter, userID primitive.ObjectID) {
	view, err := cc.Carts.GetCart(ctx, userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
