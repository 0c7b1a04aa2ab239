package usecase

import (
	"ecom-store/internal/data/repository"
	"ecom-store/pkg/mailer"
	"ecom-store/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Product ProductService
	Order   OrderService
}

func NewService(repo *repository.Repository, dispatcher mailer.Dispatcher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, dispatcher, config, log),
		User:    NewUserService(repo, log),
		Product: NewProductService(repo.Product, log),
		Order:   NewOrderService(repo.Order, log),
	}
}
