package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"storefront/controllers"
	"storefront/routes"
	"storefront/services"
	"storefront/storage"
	"storefront/utils"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()
	db := client.Database(utils.DatabaseName())

	// Wire stores and services
	stores := storage.NewStores(db)
	cartService := services.NewCartService(stores.Products, stores.Carts)
	orderService := services.NewOrderService(stores.Products, stores.Carts, stores.Orders, stores.Users)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		User:     controllers.NewUserController(db, emailService),
		Product:  controllers.NewProductController(db),
		Category: controllers.NewCategoryController(db),
		Cart:     controllers.NewCartController(cartService),
		Order:    controllers.NewOrderController(orderService, emailService),
		Contact:  controllers.NewContactController(db),
	})

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("Server is running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
