package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/maison/app/models"
	"github.com/shashiranjanraj/maison/pkg/database"
)

// ErrStockConflict is returned by DecrementStock when the product either
// no longer exists or has fewer units left than requested. The two cases
// are indistinguishable from the conditional update alone.
var ErrStockConflict = errors.New("stock changed since it was checked")

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection("product")}
}

// FindByID looks up a product by its object ID. Returns
// mongo.ErrNoDocuments when no product matches.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

// List returns the full catalogue.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create persists a new product and fills in its generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// DecrementStock atomically subtracts qty from a product's stock, but
// only when at least qty units remain. The availability check and the
// decrement happen in a single conditional update so concurrent
// checkouts cannot drive stock negative. Returns ErrStockConflict when
// the condition no longer holds.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock_qty": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock_qty": -qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStockConflict
	}
	return nil
}

// SetAvailability flips a product's in_stock flag.
func (r *ProductRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, inStock bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"in_stock": inStock}},
	)
	return err
}

// AddImage appends an image URL to a product's gallery.
func (r *ProductRepository) AddImage(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"images": url}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
