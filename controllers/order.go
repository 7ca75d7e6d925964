package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
	"storefront/services"
	"storefront/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Orders       *services.OrderService
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.OrderService, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Orders:       orders,
		EmailService: emailService,
	}
}

// CreateOrder places a new order from the user's cart
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ShippingAddress string `json:"shipping_address"`
		PaymentMethod   string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	order, err := oc.Orders.PlaceOrder(ctx, userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		serviceError(w, err)
		return
	}

	// Confirmation email, best effort
	name := claims.Email
	if user, err := oc.Orders.Users.FindUser(ctx, userID); err == nil {
		name = user.Name
	}
	go func(email, name string, order *models.Order) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, name, order); err != nil {
			log.Printf("Failed to send order confirmation to %s: %v", email, err)
		}
	}(claims.Email, name, order)

	writeJSON(w, http.StatusCreated, order)
}

// GetOrders retrieves all orders for the authenticated user
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orders, err := oc.Orders.ListOrdersForUser(ctx, userID)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetAllOrders retrieves every order with its owner resolved (Admin only)
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orders, err := oc.Orders.ListAllOrders(ctx, services.Actor{UserID: userID, Role: claims.Role})
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus overwrites an order's status (Admin only)
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := claimsFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	actor := services.Actor{UserID: userID, Role: claims.Role}
	order, err := oc.Orders.UpdateStatus(ctx, actor, orderID, req.Status, req.TrackingNumber)
	if err != nil {
		serviceError(w, err)
		return
	}

	// Notify the order's owner, best effort
	if user, err := oc.Orders.Users.FindUser(ctx, order.UserID); err == nil {
		go func(email, name string, order *models.Order) {
			if err := oc.EmailService.SendOrderStatusEmail(email, name, order); err != nil {
				log.Printf("Failed to send status email to %s: %v", email, err)
			}
		}(user.Email, user.Name, order)
	}

	writeJSON(w, http.StatusOK, order)
}
