package routes

import (
	"github.com/gorilla/mux"

	"storefront/controllers"
	"storefront/middleware"
)

// Controllers collects the handlers registered by RegisterRoutes
type Controllers struct {
	User     *controllers.UserController
	Product  *controllers.ProductController
	Category *controllers.CategoryController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Contact  *controllers.ContactController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public routes
	router.HandleFunc("/register", c.User.Register).Methods("POST")
	router.HandleFunc("/login", c.User.Login).Methods("POST")
	router.HandleFunc("/verify", c.User.VerifyEmail).Methods("GET")
	router.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	router.HandleFunc("/categories", c.Category.GetCategories).Methods("GET")
	router.HandleFunc("/contact", c.Contact.SubmitMessage).Methods("POST")

	// Authenticated routes
	auth := router.NewRoute().Subrouter()
	auth.Use(middleware.AuthMiddleware)
	auth.HandleFunc("/profile", c.User.GetProfile).Methods("GET")
	auth.HandleFunc("/cart", c.Cart.AddToCart).Methods("POST")
	auth.HandleFunc("/cart", c.Cart.SetCartQuantity).Methods("PUT")
	auth.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	auth.HandleFunc("/cart/{product_id}", c.Cart.RemoveFromCart).Methods("DELETE")
	auth.HandleFunc("/orders", c.Order.CreateOrder).Methods("POST")
	auth.HandleFunc("/orders", c.Order.GetOrders).Methods("GET")

	// Admin routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/products", c.Product.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", c.Product.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", c.Product.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/categories", c.Category.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", c.Category.UpdateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", c.Category.DeleteCategory).Methods("DELETE")
	admin.HandleFunc("/admin/orders", c.Order.GetAllOrders).Methods("GET")
	admin.HandleFunc("/admin/orders/{id}/status", c.Order.UpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/admin/contact", c.Contact.GetMessages).Methods("GET")
}
