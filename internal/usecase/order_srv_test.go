package usecase

import (
	"context"
	"testing"
	"time"

	"ecom-store/internal/data/entity"
	"ecom-store/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedOrder(repo *memOrderRepo, userID uuid.UUID, number string) *entity.Order {
	order := &entity.Order{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:      userID,
		OrderNumber: number,
		Status:      entity.OrderStatusPaid,
		TotalCents:  4200,
	}
	repo.orders = append(repo.orders, order)
	repo.items = append(repo.items, &entity.OrderItem{
		ID:             uuid.New(),
		OrderID:        order.ID,
		ProductID:      uuid.New(),
		ProductName:    "Linen Shirt",
		UnitPriceCents: 2100,
		Quantity:       2,
	})
	return order
}

func TestGetUserOrders_OnlyOwnOrders(t *testing.T) {
	repo := newMemOrderRepo()
	svc := NewOrderService(repo, zap.NewNop())

	alice := uuid.New()
	bob := uuid.New()
	seedOrder(repo, alice, "ORD-1")
	seedOrder(repo, alice, "ORD-2")
	seedOrder(repo, bob, "ORD-3")

	resp, err := svc.GetUserOrders(context.Background(), alice, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
}

func TestGetOrderByID_OwnerAndAdmin(t *testing.T) {
	repo := newMemOrderRepo()
	svc := NewOrderService(repo, zap.NewNop())

	owner := uuid.New()
	stranger := uuid.New()
	order := seedOrder(repo, owner, "ORD-1")

	detail, err := svc.GetOrderByID(context.Background(), owner, false, order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", detail.OrderNumber)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Linen Shirt", detail.Items[0].ProductName)

	// A stranger gets the same answer as for a missing order
	_, err = svc.GetOrderByID(context.Background(), stranger, false, order.ID.String())
	require.Error(t, err)
	assert.EqualError(t, err, "order not found")

	// An admin may read any order
	_, err = svc.GetOrderByID(context.Background(), stranger, true, order.ID.String())
	require.NoError(t, err)
}

func TestGetOrderByID_BadID(t *testing.T) {
	svc := NewOrderService(newMemOrderRepo(), zap.NewNop())

	_, err := svc.GetOrderByID(context.Background(), uuid.New(), false, "nope")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid order ID")
}
