package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/models"
)

// ContactController handles contact form submissions
type ContactController struct {
	Collection *mongo.Collection
}

// NewContactController creates a new ContactController
func NewContactController(db *mongo.Database) *ContactController {
	return &ContactController{
		Collection: db.Collection("contact_messages"),
	}
}

// SubmitMessage stores a contact form submission
func (cc *ContactController) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	err := json.NewDecoder(r.Body).Decode(&msg)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if msg.Email == "" || msg.Body == "" {
		http.Error(w, "Email and message body are required", http.StatusBadRequest)
		return
	}
	msg.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := cc.Collection.InsertOne(ctx, msg)
	if err != nil {
		http.Error(w, "Error saving message", http.StatusInternalServerError)
		return
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, msg)
}

// GetMessages lists contact messages, newest first (Admin only)
func (cc *ContactController) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := cc.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		http.Error(w, "Failed to retrieve messages", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	messages := []models.ContactMessage{}
	for cursor.Next(ctx) {
		var msg models.ContactMessage
		if err := cursor.Decode(&msg); err != nil {
			http.Error(w, "Error decoding message", http.StatusInternalServerError)
			return
		}
		messages = append(messages, msg)
	}
	if err := cursor.Err(); err != nil {
		http.Error(w, "Cursor error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
