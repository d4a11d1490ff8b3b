package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
	"go.uber.org/zap"
)

type OrderService struct {
	repo      port.OrderRepository
	catalog   port.CatalogClient
	adminRole string
	logger    *zap.Logger
}

func NewOrderService(repo port.OrderRepository, catalog port.CatalogClient,
	adminRole string, logger *zap.Logger) (*OrderService, error) {
	return &OrderService{
		repo:      repo,
		catalog:   catalog,
		adminRole: adminRole,
		logger:    logger,
	}, nil
}

// CreateOrder accepts a cart for the authenticated subject, re-resolves
// price and existence of every line against the catalog service and
// persists the header and lines in one transaction. The cart succeeds
// or fails as a whole: a missing product or a failed lookup aborts the
// transaction with zero rows written.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []domain.CartItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidCartItem
		}
	}

	order, err := s.repo.CreateOrder(ctx, userID, func(ctx context.Context) ([]domain.OrderLine, decimal.Decimal, error) {
		lines := make([]domain.OrderLine, 0, len(items))
		total := decimal.Zero

		for _, item := range items {
			product, err := s.catalog.GetProduct(ctx, item.ProductID)
			if err != nil {
				return nil, decimal.Zero, err
			}

			qty, err := decimal.New(int64(item.Quantity), 0)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("math error: %w", err)
			}
			subtotal, err := product.Price.Mul(qty)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("math error: %w", err)
			}
			total, err = total.Add(subtotal)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("math error: %w", err)
			}

			lines = append(lines, domain.OrderLine{
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: product.Price.Round(2),
			})
		}

		return lines, total.Round(2), nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error("Create order", zap.Error(err))
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			return nil, err
		}
		return nil, domain.ErrInternal
	}

	return order, nil
}

// GetOrdersByUser returns the subject's orders, newest first. Only the
// owning subject or a holder of the elevated role may list them; the
// check happens before the store is touched.
func (s *OrderService) GetOrdersByUser(ctx context.Context, actor *port.TokenPayload, userID string) ([]*domain.Order, error) {
	if actor.Subject != userID && !actor.HasRole(s.adminRole) {
		return nil, domain.ErrForbidden
	}

	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

// GetOrder applies the ownership rule per record: an unknown id is
// not-found, someone else's order is forbidden.
func (s *OrderService) GetOrder(ctx context.Context, actor *port.TokenPayload, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Get order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if order.UserID != actor.Subject && !actor.HasRole(s.adminRole) {
		return nil, domain.ErrForbidden
	}

	return order, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (*domain.Order, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.UpdateOrderStatus(ctx, orderID, parsed)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Update order status", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return order, nil
}
