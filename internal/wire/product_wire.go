package wire

import (
	"ecom-store/internal/adaptor"
	"ecom-store/internal/data/repository"
	"ecom-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Catalog browsing: list with search/filter, and detail
	r.Get("/api/products", productHandler.GetProducts)
	r.Get("/api/products/{id}", productHandler.GetProductByID)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, repo.User, log),
		middleware.Admin(log),
	).Route("/api/admin/products", func(r chi.Router) {
		r.Post("/", productHandler.CreateProduct)
		r.Put("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})
}
