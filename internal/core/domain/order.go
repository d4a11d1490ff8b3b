package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus maps a raw status string to the enumerated set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidOrderStatus
}

type Order struct {
	ID          uint64
	UserID      string
	TotalAmount decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Lines       []OrderLine
}

// OrderLine references its product by value: the product may change or
// disappear from the catalog later, the snapshot stays as purchased.
type OrderLine struct {
	ID              uint64
	OrderID         uint64
	ProductID       string
	Quantity        int32
	PriceAtPurchase decimal.Decimal
}

// CartItem is one requested line of an unsubmitted cart.
type CartItem struct {
	ProductID string
	Quantity  int32
}
