package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/maison/app/models"
	"github.com/shashiranjanraj/maison/app/repositories"
	"github.com/shashiranjanraj/maison/app/services"
	"github.com/shashiranjanraj/maison/pkg/bind"
	"github.com/shashiranjanraj/maison/pkg/logger"
	"github.com/shashiranjanraj/maison/pkg/response"
)

type checkoutEngine interface {
	Checkout(ctx context.Context, items []models.CartItem) (services.CheckoutResult, error)
}

type orderReader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
}

// CheckoutController exposes the checkout engine and order lookups.
type CheckoutController struct {
	service checkoutEngine
	orders  orderReader
}

func NewCheckoutController() *CheckoutController {
	orders := repositories.NewOrderRepository()
	return &CheckoutController{
		service: services.NewCheckoutService(repositories.NewProductRepository(), orders),
		orders:  orders,
	}
}

// CheckoutRequest is the POST /api/checkout body.
type CheckoutRequest struct {
	Items []models.CartItem `json:"items"`
}

func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	result, err := c.service.Checkout(r.Context(), req.Items)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}
	response.Success(w, result)
}

// writeCheckoutError maps the engine's typed errors onto HTTP statuses.
// Error messages are part of the API contract; clients match on them.
func writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalidID    *services.InvalidIDError
		invalidQty   *services.InvalidQuantityError
		notFound     *services.NotFoundError
		insufficient *services.InsufficientStockError
	)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		response.BadRequest(w, err.Error())
	case errors.As(err, &invalidID), errors.As(err, &invalidQty), errors.As(err, &insufficient):
		response.BadRequest(w, err.Error())
	case errors.As(err, &notFound):
		response.NotFound(w, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("checkout: failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (c *CheckoutController) ShowOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID format")
		return
	}

	order, err := c.orders.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			response.NotFound(w, "Order not found")
			return
		}
		logger.WithCtx(r.Context()).Error("orders: lookup failed", "order_id", id.Hex(), "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(w, order)
}
