package response

import (
	"time"

	"ecom-store/internal/data/entity"
)

type OrderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type OrderDetailResponse struct {
	OrderResponse
	Items []OrderItemResponse `json:"items"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		TotalCents:  order.TotalCents,
		CreatedAt:   order.CreatedAt,
	}
}

func OrderItemToResponse(item *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ProductID:      item.ProductID.String(),
		ProductName:    item.ProductName,
		UnitPriceCents: item.UnitPriceCents,
		Quantity:       item.Quantity,
	}
}
