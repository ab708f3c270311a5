package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/maison/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a starter catalogue. Skips products whose SKU
// already exists so the seeder can be re-run.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("product")

	catalogue := []models.Product{
		{
			Title:       "Linen Armchair",
			Description: "Mid-century armchair upholstered in stonewashed linen.",
			Price:       199.99,
			Category:    "seating",
			SKU:         "CH-LIN-01",
			InStock:     true,
			StockQty:    5,
		},
		{
			Title:       "Oak Dining Table",
			Description: "Six-seat solid oak table with a natural oil finish.",
			Price:       849.00,
			Category:    "tables",
			SKU:         "TB-OAK-06",
			InStock:     true,
			StockQty:    3,
		},
		{
			Title:       "Velvet Sofa",
			Description: "Three-seat sofa in forest green velvet.",
			Price:       1249.50,
			Category:    "seating",
			SKU:         "SF-VEL-03",
			InStock:     true,
			StockQty:    2,
		},
		{
			Title:       "Ceramic Vase",
			Description: "Hand-thrown stoneware vase, 30 cm.",
			Price:       14.05,
			Category:    "decor",
			SKU:         "DC-VAS-30",
			InStock:     true,
			StockQty:    40,
		},
		{
			Title:       "Wool Throw",
			Description: "Lambswool throw, herringbone weave.",
			Price:       59.95,
			Category:    "textiles",
			SKU:         "TX-THR-01",
			InStock:     true,
			StockQty:    10,
		},
	}

	for _, p := range catalogue {
		n, err := col.CountDocuments(ctx, bson.M{"sku": p.SKU})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if _, err := col.InsertOne(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
