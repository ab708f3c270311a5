package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/maison/app/models"
	"github.com/shashiranjanraj/maison/app/repositories"
	"github.com/shashiranjanraj/maison/app/services"
)

// ─── Fakes ────────────────────────────────────────────────────────────────────

type fakeCatalog struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeCatalog(products ...*models.Product) *fakeCatalog {
	c := &fakeCatalog{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return models.Product{}, mongo.ErrNoDocuments
	}
	return *p, nil
}

func (c *fakeCatalog) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	p, ok := c.products[id]
	if !ok || p.StockQty < qty {
		return repositories.ErrStockConflict
	}
	p.StockQty -= qty
	return nil
}

func (c *fakeCatalog) SetAvailability(_ context.Context, id primitive.ObjectID, inStock bool) error {
	if p, ok := c.products[id]; ok {
		p.InStock = inStock
	}
	return nil
}

type fakeOrders struct {
	created  []*models.Order
	statuses map[primitive.ObjectID]string
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{statuses: map[primitive.ObjectID]string{}}
}

func (o *fakeOrders) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	cp := *order
	o.created = append(o.created, &cp)
	return nil
}

func (o *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	o.statuses[id] = status
	return nil
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestCheckoutEmptyCart(t *testing.T) {
	svc := services.NewCheckoutService(newFakeCatalog(), newFakeOrders())

	_, err := svc.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	_, err = svc.Checkout(context.Background(), []models.CartItem{})
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckoutInvalidID(t *testing.T) {
	svc := services.NewCheckoutService(newFakeCatalog(), newFakeOrders())

	_, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: "not-a-hex-id", Quantity: 1},
	})

	var invalid *services.InvalidIDError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Invalid ID format", err.Error())
}

func TestCheckoutProductNotFound(t *testing.T) {
	svc := services.NewCheckoutService(newFakeCatalog(), newFakeOrders())
	missing := primitive.NewObjectID().Hex()

	_, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: missing, Quantity: 1},
	})

	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Product "+missing+" not found", err.Error())
}

func TestCheckoutInvalidQuantity(t *testing.T) {
	prod := &models.Product{Title: "Lamp", Price: 10, InStock: true, StockQty: 5}
	catalog := newFakeCatalog(prod)
	svc := services.NewCheckoutService(catalog, newFakeOrders())

	for _, qty := range []int{0, -3} {
		_, err := svc.Checkout(context.Background(), []models.CartItem{
			{ProductID: prod.ID.Hex(), Quantity: qty},
		})
		var invalid *services.InvalidQuantityError
		require.ErrorAs(t, err, &invalid, "quantity %d", qty)
	}
	assert.Equal(t, 5, prod.StockQty, "failed checkout must not touch stock")
}

func TestCheckoutInsufficientStock(t *testing.T) {
	prod := &models.Product{Title: "Velvet Sofa", Price: 499.50, InStock: true, StockQty: 2}
	catalog := newFakeCatalog(prod)
	orders := newFakeOrders()
	svc := services.NewCheckoutService(catalog, orders)

	_, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: prod.ID.Hex(), Quantity: 3},
	})

	var insufficient *services.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Insufficient stock for Velvet Sofa", err.Error())
	assert.Equal(t, 2, prod.StockQty)
	assert.Empty(t, orders.created)
}

func TestCheckoutOutOfStockFlag(t *testing.T) {
	// stock_qty is positive but the availability flag is down.
	prod := &models.Product{Title: "Oak Table", Price: 120, InStock: false, StockQty: 4}
	svc := services.NewCheckoutService(newFakeCatalog(prod), newFakeOrders())

	_, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: prod.ID.Hex(), Quantity: 1},
	})

	var insufficient *services.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
}

func TestCheckoutMixedCartHasNoSideEffects(t *testing.T) {
	// Second line fails validation: nothing may be written for the first.
	good := &models.Product{Title: "Cushion", Price: 25, InStock: true, StockQty: 10}
	bad := &models.Product{Title: "Rug", Price: 80, InStock: true, StockQty: 1}
	catalog := newFakeCatalog(good, bad)
	orders := newFakeOrders()
	svc := services.NewCheckoutService(catalog, orders)

	_, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: good.ID.Hex(), Quantity: 2},
		{ProductID: bad.ID.Hex(), Quantity: 5},
	})

	var insufficient *services.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 10, good.StockQty, "valid line must not be decremented")
	assert.Equal(t, 1, bad.StockQty)
	assert.Empty(t, orders.created)
}

func TestCheckoutSuccess(t *testing.T) {
	prod := &models.Product{
		Title:    "Linen Armchair",
		Price:    199.99,
		Images:   []string{"https://cdn.example.com/armchair.jpg", "https://cdn.example.com/armchair-2.jpg"},
		InStock:  true,
		StockQty: 5,
	}
	catalog := newFakeCatalog(prod)
	orders := newFakeOrders()
	svc := services.NewCheckoutService(catalog, orders)

	res, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: prod.ID.Hex(), Quantity: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", res.Status)
	assert.Equal(t, int64(99995), res.Subtotal, "199.99 → 19999 cents × 5")
	assert.Equal(t, "usd", res.Currency)
	assert.NotEmpty(t, res.OrderID)

	require.Len(t, orders.created, 1)
	order := orders.created[0]
	assert.Equal(t, models.OrderStatusPending, order.Status, "persisted with default status")
	assert.Equal(t, int64(99995), order.Subtotal)
	assert.NotEmpty(t, order.CheckoutSessionID)
	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, prod.ID.Hex(), item.ProductID)
	assert.Equal(t, "Linen Armchair", item.Title)
	assert.Equal(t, int64(19999), item.UnitAmount)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "https://cdn.example.com/armchair.jpg", item.Image, "first image only")

	assert.Equal(t, models.OrderStatusConfirmed, orders.statuses[order.ID],
		"stored status follows the response best-effort")

	assert.Equal(t, 0, prod.StockQty)
	assert.False(t, prod.InStock, "exhausted product flagged out of stock")
}

func TestCheckoutPartialDecrementLeavesInStock(t *testing.T) {
	prod := &models.Product{Title: "Candle", Price: 12.50, InStock: true, StockQty: 8}
	catalog := newFakeCatalog(prod)
	svc := services.NewCheckoutService(catalog, newFakeOrders())

	res, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: prod.ID.Hex(), Quantity: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3750), res.Subtotal)
	assert.Equal(t, 5, prod.StockQty)
	assert.True(t, prod.InStock)
}

func TestCheckoutMultiLineSubtotal(t *testing.T) {
	a := &models.Product{Title: "Mirror", Price: 89.99, InStock: true, StockQty: 3}
	b := &models.Product{Title: "Vase", Price: 14.05, InStock: true, StockQty: 10}
	svc := services.NewCheckoutService(newFakeCatalog(a, b), newFakeOrders())

	res, err := svc.Checkout(context.Background(), []models.CartItem{
		{ProductID: a.ID.Hex(), Quantity: 2},
		{ProductID: b.ID.Hex(), Quantity: 4},
	})
	require.NoError(t, err)

	// 8999*2 + 1405*4
	assert.Equal(t, int64(23618), res.Subtotal)
	assert.Equal(t, 1, a.StockQty)
	assert.Equal(t, 6, b.StockQty)
}

func TestCheckoutIsNotIdempotent(t *testing.T) {
	prod := &models.Product{Title: "Stool", Price: 30, InStock: true, StockQty: 10}
	catalog := newFakeCatalog(prod)
	orders := newFakeOrders()
	svc := services.NewCheckoutService(catalog, orders)

	cart := []models.CartItem{{ProductID: prod.ID.Hex(), Quantity: 2}}

	first, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)
	second, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID, "same cart twice → two orders")
	assert.Len(t, orders.created, 2)
	assert.Equal(t, 6, prod.StockQty, "stock decremented twice")
}
