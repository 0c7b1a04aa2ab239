package wire

import (
	"ecom-store/internal/adaptor"
	"ecom-store/internal/data/repository"
	"ecom-store/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/users/register", authHandler.Register)
	r.Post("/api/users/verify-otp", authHandler.VerifyOTP)
	r.Post("/api/users/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Post("/api/users/logout", authHandler.Logout)
}
