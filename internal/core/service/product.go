package service

import (
	"context"
	"errors"
	"strings"

	"github.com/govalues/decimal"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
	"go.uber.org/zap"
)

type ProductService struct {
	repo   port.ProductRepository
	logger *zap.Logger
}

func NewProductService(repo port.ProductRepository, logger *zap.Logger) (*ProductService, error) {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	list, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("List products", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	product, err := s.repo.ReadProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Get product", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, name string, price decimal.Decimal, category string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidProductName
	}
	if price.IsNeg() {
		return nil, domain.ErrInvalidProductPrice
	}

	product, err := s.repo.CreateProduct(ctx, &domain.Product{
		Name:     name,
		Price:    price.Round(2),
		Category: category,
	})
	if err != nil {
		s.logger.Error("Create product", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID uint64, update port.ProductUpdate) (*domain.Product, error) {
	if update.Name == nil && update.Price == nil && update.Category == nil {
		return nil, domain.ErrNoUpdatedData
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, domain.ErrInvalidProductName
		}
		update.Name = &trimmed
	}
	if update.Price != nil {
		if update.Price.IsNeg() {
			return nil, domain.ErrInvalidProductPrice
		}
		rounded := update.Price.Round(2)
		update.Price = &rounded
	}

	product, err := s.repo.UpdateProduct(ctx, productID, update)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Update product", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	product, err := s.repo.DeleteProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Delete product", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return product, nil
}
