package repository

import (
	"ecom-store/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	OTP     OTPRepository
	Product ProductRepository
	Order   OrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		OTP:     NewOTPRepository(db, log),
		Product: NewProductRepository(db, log),
		Order:   NewOrderRepository(db, log),
	}
}
