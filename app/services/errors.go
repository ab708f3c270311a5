package services

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when a checkout request carries no items.
var ErrEmptyCart = errors.New("Cart is empty")

// InvalidIDError marks a product id that is not a valid object id hex
// string. Maps to a 400 at the HTTP boundary.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string { return "Invalid ID format" }

// NotFoundError marks a cart line whose product does not exist. Maps to
// a 404 at the HTTP boundary.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product %s not found", e.ID)
}

// InsufficientStockError marks a cart line that asks for more units
// than the product has, or a product flagged out of stock. The message
// carries the product title for diagnostics.
type InsufficientStockError struct {
	Title string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.Title)
}

// InvalidQuantityError marks a cart line with a non-positive quantity.
type InvalidQuantityError struct {
	ID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("Quantity must be at least 1 for product %s", e.ID)
}
