package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/khanhvo/retail-backoffice/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware)

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/products", handlers.CreateProductHandler)
		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Get("/products/{id}/variants", handlers.GetVariantsByProductHandler)

		r.Post("/variants", handlers.CreateVariantHandler)
		r.Get("/variants/{id}", handlers.GetVariantByIDHandler)
		r.Get("/variants/sku/{sku}", handlers.GetVariantBySKUHandler)
		r.Put("/variants/{id}", handlers.UpdateVariantHandler)
		r.Delete("/variants/{id}", handlers.DeleteVariantHandler)

		r.Get("/inventory/low-stock", handlers.LowStockHandler)
		r.Post("/variants/{id}/stock", handlers.AdjustStockHandler)

		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Post("/products/import/async", handlers.ImportProductsAsyncHandler)
		r.Get("/products/import/jobs/{id}", handlers.ImportJobStatusHandler)

		r.Post("/suppliers", handlers.CreateSupplierHandler)
		r.Get("/suppliers", handlers.GetSuppliersHandler)
		r.Get("/suppliers/{id}", handlers.GetSupplierByIDHandler)
		r.Put("/suppliers/{id}", handlers.UpdateSupplierHandler)
		r.Delete("/suppliers/{id}", handlers.DeleteSupplierHandler)

		r.Post("/purchase-orders", handlers.CreatePurchaseOrderHandler)
		r.Get("/purchase-orders", handlers.GetPurchaseOrdersHandler)
		r.Get("/purchase-orders/{id}", handlers.GetPurchaseOrderByIDHandler)
		r.Post("/purchase-orders/{id}/receive", handlers.ReceivePurchaseOrderHandler)
		r.Post("/purchase-orders/{id}/cancel", handlers.CancelPurchaseOrderHandler)

		r.Post("/pos/carts", handlers.CreateCartHandler)
		r.Get("/pos/carts/{id}", handlers.GetCartHandler)
		r.Post("/pos/carts/{id}/items", handlers.AddCartItemHandler)
		r.Put("/pos/carts/{id}/items/{sku}", handlers.SetCartQuantityHandler)
		r.Post("/pos/carts/{id}/checkout", handlers.CheckoutHandler)

		r.Get("/sales", handlers.GetSalesHandler)
		r.Get("/sales/{id}", handlers.GetSaleByIDHandler)
		r.Get("/sales/{id}/receipt", handlers.GetReceiptHandler)
	})

	return r
}
