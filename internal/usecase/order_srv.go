package usecase

import (
	"context"
	"fmt"

	"ecom-store/internal/data/repository"
	"ecom-store/internal/dto/request"
	"ecom-store/internal/dto/response"
	"ecom-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	GetUserOrders(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrderByID(ctx context.Context, userID uuid.UUID, isAdmin bool, orderID string) (*response.OrderDetailResponse, error)
}

type orderService struct {
	repo repository.OrderRepository
	log  *zap.Logger
}

func NewOrderService(repo repository.OrderRepository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	limit := page.Limit()
	offset := page.Offset()

	orders, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("count orders: %w", err)
	}

	orderResponses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		orderResponses[i] = response.OrderToResponse(order)
	}

	return response.NewPaginatedResponse(orderResponses, page.Page, limit, total), nil
}

// GetOrderByID returns one order with its line items. Only the owner or an
// admin may read it; anyone else gets the same answer as a missing order.
func (s *orderService) GetOrderByID(ctx context.Context, userID uuid.UUID, isAdmin bool, orderID string) (*response.OrderDetailResponse, error) {
	id, err := utils.ParseUUID(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get order", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("failed to get order")
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	if order.UserID != userID && !isAdmin {
		s.log.Warn("Order access by non-owner",
			zap.String("order_id", orderID),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("order not found")
	}

	items, err := s.repo.FindItems(ctx, order.ID)
	if err != nil {
		s.log.Error("Failed to get order items", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("failed to get order")
	}

	detail := &response.OrderDetailResponse{
		OrderResponse: response.OrderToResponse(order),
		Items:         make([]response.OrderItemResponse, len(items)),
	}
	for i, item := range items {
		detail.Items[i] = response.OrderItemToResponse(item)
	}

	return detail, nil
}
