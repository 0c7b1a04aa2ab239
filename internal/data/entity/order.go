package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Orders are written by the checkout flow, which lives outside this service.
// This side only reads them.
type Order struct {
	BaseNoDelete
	UserID      uuid.UUID   `db:"user_id"`
	OrderNumber string      `db:"order_number"`
	Status      OrderStatus `db:"status"`
	TotalCents  int64       `db:"total_cents"`
}

type OrderItem struct {
	ID             uuid.UUID `db:"id"`
	OrderID        uuid.UUID `db:"order_id"`
	ProductID      uuid.UUID `db:"product_id"`
	ProductName    string    `db:"product_name"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	Quantity       int       `db:"quantity"`
}
