package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a priced line item frozen into an order at checkout time.
// UnitAmount is the per-unit price in minor currency units (cents).
type OrderItem struct {
	ProductID  string `bson:"product_id"      json:"product_id"`
	Title      string `bson:"title"           json:"title"`
	UnitAmount int64  `bson:"unit_amount"     json:"unit_amount"`
	Quantity   int    `bson:"quantity"        json:"quantity"`
	Image      string `bson:"image,omitempty" json:"image,omitempty"`
}

// Order is an immutable record of a completed checkout. Prices are
// captured at checkout time and never re-read from the catalogue.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"                 json:"id"`
	Items             []OrderItem        `bson:"items"                         json:"items"`
	Currency          string             `bson:"currency"                      json:"currency"`
	Subtotal          int64              `bson:"subtotal"                      json:"subtotal"`
	Status            string             `bson:"status"                        json:"status"`
	CheckoutSessionID string             `bson:"checkout_session_id,omitempty" json:"checkout_session_id,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"                    json:"created_at"`
}

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)
