package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/maison/app/models"
	"github.com/shashiranjanraj/maison/app/repositories"
	"github.com/shashiranjanraj/maison/config"
	"github.com/shashiranjanraj/maison/pkg/event"
	"github.com/shashiranjanraj/maison/pkg/logger"
	"github.com/shashiranjanraj/maison/pkg/metrics"
	"github.com/shashiranjanraj/maison/pkg/money"
)

// CatalogStore is the slice of the product repository the checkout
// engine needs.
type CatalogStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, inStock bool) error
}

// OrderStore persists orders for the checkout engine.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// CheckoutService turns a cart into an order.
//
// Checkout runs in two phases: a validation pass that prices every line
// from the catalogue (client prices are never trusted), then a stock
// application pass after the order is persisted. The two phases are not
// atomic with each other; a crash between them leaves a persisted order
// with unapplied decrements, which is surfaced via logs and the
// stock_apply_failures metric rather than rolled back.
type CheckoutService struct {
	catalog CatalogStore
	orders  OrderStore
}

func NewCheckoutService(catalog CatalogStore, orders OrderStore) *CheckoutService {
	return &CheckoutService{catalog: catalog, orders: orders}
}

// CheckoutResult is what a successful checkout reports back.
type CheckoutResult struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Subtotal int64  `json:"subtotal"`
	Currency string `json:"currency"`
}

// OrderPlaced is the payload fired on the "order.placed" event after a
// checkout confirms.
type OrderPlaced struct {
	OrderID  string `json:"order_id"`
	Subtotal int64  `json:"subtotal"`
	Currency string `json:"currency"`
	Lines    int    `json:"lines"`
}

// StockChange is the payload fired on the "stock.changed" event for
// every applied decrement.
type StockChange struct {
	ProductID string `json:"product_id"`
	StockQty  int    `json:"stock_qty"`
	InStock   bool   `json:"in_stock"`
}

type pendingDecrement struct {
	id  primitive.ObjectID
	qty int
}

// Checkout validates every cart line, persists an immutable order with
// server-computed prices, then applies stock decrements. No order or
// stock write happens before the whole cart validates. Calling it twice
// with the same cart produces two orders; idempotence is the caller's
// problem.
func (s *CheckoutService) Checkout(ctx context.Context, items []models.CartItem) (CheckoutResult, error) {
	if len(items) == 0 {
		metrics.CheckoutTotal.WithLabelValues("empty_cart").Inc()
		return CheckoutResult{}, ErrEmptyCart
	}

	// Validation pass. Prices come from the catalogue, never the client.
	orderItems := make([]models.OrderItem, 0, len(items))
	decrements := make([]pendingDecrement, 0, len(items))
	var subtotal int64

	for _, item := range items {
		if item.Quantity < 1 {
			metrics.CheckoutTotal.WithLabelValues("invalid_quantity").Inc()
			return CheckoutResult{}, &InvalidQuantityError{ID: item.ProductID}
		}

		oid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			metrics.CheckoutTotal.WithLabelValues("invalid_id").Inc()
			return CheckoutResult{}, &InvalidIDError{ID: item.ProductID}
		}

		prod, err := s.catalog.FindByID(ctx, oid)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				metrics.CheckoutTotal.WithLabelValues("not_found").Inc()
				return CheckoutResult{}, &NotFoundError{ID: item.ProductID}
			}
			metrics.CheckoutTotal.WithLabelValues("error").Inc()
			return CheckoutResult{}, err
		}

		if !prod.InStock || prod.StockQty < item.Quantity {
			metrics.CheckoutTotal.WithLabelValues("insufficient_stock").Inc()
			return CheckoutResult{}, &InsufficientStockError{Title: prod.Title}
		}

		unitAmount := money.ToMinorUnits(prod.Price)
		subtotal += unitAmount * int64(item.Quantity)

		var image string
		if len(prod.Images) > 0 {
			image = prod.Images[0]
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:  prod.ID.Hex(),
			Title:      prod.Title,
			UnitAmount: unitAmount,
			Quantity:   item.Quantity,
			Image:      image,
		})
		decrements = append(decrements, pendingDecrement{id: oid, qty: item.Quantity})
	}

	order := &models.Order{
		Items:             orderItems,
		Currency:          config.Currency(),
		Subtotal:          subtotal,
		Status:            models.OrderStatusPending,
		CheckoutSessionID: uuid.NewString(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		metrics.CheckoutTotal.WithLabelValues("error").Inc()
		return CheckoutResult{}, err
	}

	// Stock application pass, in validation order. The order already
	// stands; failures here are logged and counted, never rolled back.
	for _, d := range decrements {
		s.applyDecrement(ctx, d)
	}

	// The API reports "confirmed" once stock application has run; the
	// stored status follows best-effort.
	if err := s.orders.UpdateStatus(ctx, order.ID, models.OrderStatusConfirmed); err != nil {
		logger.Warn("checkout: order status update failed",
			"order_id", order.ID.Hex(), "error", err)
	}

	metrics.CheckoutTotal.WithLabelValues("confirmed").Inc()
	metrics.OrderSubtotal.Observe(float64(subtotal))
	event.Fire("order.placed", OrderPlaced{
		OrderID:  order.ID.Hex(),
		Subtotal: subtotal,
		Currency: order.Currency,
		Lines:    len(orderItems),
	})

	return CheckoutResult{
		OrderID:  order.ID.Hex(),
		Status:   models.OrderStatusConfirmed,
		Subtotal: subtotal,
		Currency: order.Currency,
	}, nil
}

// applyDecrement subtracts one cart line's quantity from stock and, when
// the product is exhausted, clears its availability flag. The decrement
// is conditional on enough stock remaining, so a concurrent checkout
// that drained the product first makes this line fail rather than drive
// stock negative.
func (s *CheckoutService) applyDecrement(ctx context.Context, d pendingDecrement) {
	if err := s.catalog.DecrementStock(ctx, d.id, d.qty); err != nil {
		metrics.StockApplyFailures.Inc()
		logger.Error("checkout: stock decrement failed",
			"product_id", d.id.Hex(), "quantity", d.qty, "error", err)
		return
	}
	metrics.StockDecrements.Inc()

	prod, err := s.catalog.FindByID(ctx, d.id)
	if err != nil {
		logger.Warn("checkout: stock re-read failed", "product_id", d.id.Hex(), "error", err)
		return
	}
	if prod.StockQty <= 0 && prod.InStock {
		if err := s.catalog.SetAvailability(ctx, d.id, false); err != nil {
			logger.Warn("checkout: availability update failed",
				"product_id", d.id.Hex(), "error", err)
			return
		}
		prod.InStock = false
	}

	event.Fire("stock.changed", StockChange{
		ProductID: d.id.Hex(),
		StockQty:  prod.StockQty,
		InStock:   prod.InStock,
	})
}

// Compile-time checks that the mongo repositories satisfy the store
// interfaces the engine consumes.
var (
	_ CatalogStore = (*repositories.ProductRepository)(nil)
	_ OrderStore   = (*repositories.OrderRepository)(nil)
)
