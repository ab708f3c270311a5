package routes

import (
	"github.com/shashiranjanraj/maison/app/controllers"
	"github.com/shashiranjanraj/maison/pkg/router"
)

// RegisterAPI mounts the storefront endpoints.
func RegisterAPI(r *router.Router) {
	products := controllers.NewProductController()
	checkout := controllers.NewCheckoutController()

	api := r.Group("/api")

	api.Get("/products", "products.list", products.List)
	api.Post("/products", "products.create", products.Create)
	api.Get("/products/{id}", "products.show", products.Show)
	api.Post("/products/{id}/images", "products.images.create", products.UploadImage)

	api.Post("/checkout", "checkout.create", checkout.Checkout)
	api.Get("/orders/{id}", "orders.show", checkout.ShowOrder)
}
