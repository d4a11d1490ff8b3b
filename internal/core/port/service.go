package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/sklep-internetowy/backend/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, items []domain.CartItem) (*domain.Order, error)
	GetOrdersByUser(ctx context.Context, actor *TokenPayload, userID string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, actor *TokenPayload, orderID uint64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (*domain.Order, error)
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, productID uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, category string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID uint64, update ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uint64) (*domain.Product, error)
}
