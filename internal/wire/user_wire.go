package wire

import (
	"ecom-store/internal/adaptor"
	"ecom-store/internal/data/repository"
	"ecom-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED USER ROUTES ====================
	// User profile - requires authentication
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Route("/api/user/profile", func(r chi.Router) {
			r.Get("/", userHandler.GetProfile)
			r.Put("/", userHandler.UpdateProfile)
		})

	// ==================== ADMIN ROUTES ====================
	// Admin user management - requires both authentication AND admin role
	r.With(
		middleware.AuthSession(repo.Session, repo.User, log),
		middleware.Admin(log),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)       // GET /api/admin/users?page=1&per_page=10
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{user-id}
	})
}
