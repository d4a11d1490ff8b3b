package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/sklep-internetowy/backend/internal/core/domain"
)

// ResolveLinesFn resolves the requested cart lines to priced order
// lines and their total. It runs inside the order-creation transaction:
// any error aborts the transaction and nothing is persisted.
type ResolveLinesFn func(ctx context.Context) ([]domain.OrderLine, decimal.Decimal, error)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type OrderRepository interface {
	CreateOrder(ctx context.Context, userID string, resolve ResolveLinesFn) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint64, status domain.OrderStatus) (*domain.Order, error)
}

// ProductUpdate lists the optional fields of a partial product update.
// A nil field is left untouched.
type ProductUpdate struct {
	Name     *string
	Price    *decimal.Decimal
	Category *string
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, productID uint64, update ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uint64) (*domain.Product, error)
}
