package controllers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/maison/app/models"
	"github.com/shashiranjanraj/maison/app/repositories"
	"github.com/shashiranjanraj/maison/pkg/bind"
	"github.com/shashiranjanraj/maison/pkg/cache"
	"github.com/shashiranjanraj/maison/pkg/logger"
	"github.com/shashiranjanraj/maison/pkg/metrics"
	"github.com/shashiranjanraj/maison/pkg/response"
	"github.com/shashiranjanraj/maison/pkg/storage"
)

const (
	// ProductListCacheKey caches GET /api/products; invalidated on
	// product writes and stock changes.
	ProductListCacheKey = "products:list"

	productListCacheTTL = 60 * time.Second

	maxImageUploadBytes = 8 << 20 // 8 MB
)

type productStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	AddImage(ctx context.Context, id primitive.ObjectID, url string) error
}

// ProductController serves the catalogue endpoints.
type ProductController struct {
	repo productStore
}

func NewProductController() *ProductController {
	return &ProductController{repo: repositories.NewProductRepository()}
}

// CreateProductRequest is the POST /api/products body. InStock and
// StockQty are pointers so an absent field can be told apart from an
// explicit false/zero; absent defaults to true / 10.
type CreateProductRequest struct {
	Title       string   `json:"title"       validate:"required,max=255"`
	Description string   `json:"description"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	SKU         string   `json:"sku"`
	InStock     *bool    `json:"in_stock"`
	StockQty    *int     `json:"stock_qty"`
}

// List returns the full catalogue, served from the redis cache when warm.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if cache.Get(ProductListCacheKey, &products) {
		metrics.CacheHits.WithLabelValues(ProductListCacheKey).Inc()
		response.Success(w, products)
		return
	}
	metrics.CacheMisses.WithLabelValues(ProductListCacheKey).Inc()

	products, err := c.repo.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("products: list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := cache.Set(ProductListCacheKey, products, productListCacheTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("products: cache write failed", "error", err)
	}
	response.Success(w, products)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if req.StockQty != nil && *req.StockQty < 0 {
		errs["stock_qty"] = "The stock_qty must be greater than or equal to 0."
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		SKU:         req.SKU,
		InStock:     true,
		StockQty:    10,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.StockQty != nil {
		product.StockQty = *req.StockQty
	}

	if err := c.repo.Create(r.Context(), &product); err != nil {
		logger.WithCtx(r.Context()).Error("products: create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := cache.Forget(ProductListCacheKey); err != nil {
		logger.WithCtx(r.Context()).Warn("products: cache invalidation failed", "error", err)
	}
	response.Created(w, product)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID format")
		return
	}

	product, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			response.NotFound(w, "Product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("products: lookup failed", "product_id", id.Hex(), "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.Success(w, product)
}

// UploadImage accepts a multipart "image" file, stores it on the default
// disk and appends its public URL to the product's gallery.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID format")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "An image file is required")
		return
	}
	defer file.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	path := "products/" + id.Hex() + "/" + name
	if err := storage.PutStream(path, file); err != nil {
		logger.WithCtx(r.Context()).Error("products: image store failed", "product_id", id.Hex(), "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	url := storage.URL(path)
	if err := c.repo.AddImage(r.Context(), id, url); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			response.NotFound(w, "Product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("products: image append failed", "product_id", id.Hex(), "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := cache.Forget(ProductListCacheKey); err != nil {
		logger.WithCtx(r.Context()).Warn("products: cache invalidation failed", "error", err)
	}
	response.Created(w, map[string]string{"url": url})
}
