package wire

import (
	"ecom-store/internal/adaptor"
	"ecom-store/internal/data/repository"
	"ecom-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Orders are always personal, every route needs a session
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Route("/api/orders", func(r chi.Router) {
			r.Get("/", orderHandler.GetOrders)
			r.Get("/{id}", orderHandler.GetOrderByID)
		})
}
