package port

import (
	"context"

	"github.com/govalues/decimal"
)

// CatalogProduct is the catalog service's answer to a product lookup.
type CatalogProduct struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
}

//go:generate mockgen -source=catalog.go -destination=mock/catalog.go -package=mock
type CatalogClient interface {
	GetProduct(ctx context.Context, productID string) (*CatalogProduct, error)
}
