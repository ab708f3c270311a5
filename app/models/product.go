package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product represents a product in the catalogue.
//
// Price is the display price in major currency units (e.g. dollars);
// checkout converts it to minor units before any arithmetic.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title"                 json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price"                 json:"price"`
	Category    string             `bson:"category,omitempty"    json:"category,omitempty"`
	Images      []string           `bson:"images,omitempty"      json:"images,omitempty"`
	SKU         string             `bson:"sku,omitempty"         json:"sku,omitempty"`
	InStock     bool               `bson:"in_stock"              json:"in_stock"`
	StockQty    int                `bson:"stock_qty"             json:"stock_qty"`
}

// CartItem is a single line of a checkout request: a product reference
// and a requested quantity. The client never supplies prices; quantity
// bounds are enforced by the checkout service.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
