package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sklep-internetowy/backend/internal/adapter/storage"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
)

type OrderRepository struct {
	db *storage.DB
}

func NewOrderRepository(db *storage.DB) (*OrderRepository, error) {
	return &OrderRepository{db: db}, nil
}

// CreateOrder runs resolve inside a transaction and persists the header
// plus one row per resolved line. pgx.BeginFunc rolls back on any error
// or panic and returns the connection to the pool on every path.
func (or *OrderRepository) CreateOrder(ctx context.Context, userID string, resolve port.ResolveLinesFn) (*domain.Order, error) {
	var order domain.Order

	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		lines, total, err := resolve(ctx)
		if err != nil {
			return err
		}

		headerSt := or.db.QueryBuilder.
			Insert("orders").
			Columns("user_id", "total_amount", "status").
			Values(userID, total, domain.OrderStatusPending).
			Suffix("RETURNING id, user_id, total_amount, status, created_at, updated_at")

		sql, args, err := headerSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID

			lineSt := or.db.QueryBuilder.
				Insert("order_items").
				Columns("order_id", "product_id", "quantity", "price_at_purchase").
				Values(lines[i].OrderID, lines[i].ProductID, lines[i].Quantity, lines[i].PriceAtPurchase).
				Suffix("RETURNING id")

			sql, args, err := lineSt.ToSql()
			if err != nil {
				return err
			}

			err = tx.QueryRow(ctx, sql, args...).Scan(&lines[i].ID)
			if err != nil {
				return err
			}
		}

		order.Lines = lines
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return nil, domain.ErrInvalidCartItem
		}
		return nil, err
	}

	return &order, nil
}

func (or *OrderRepository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select("id", "user_id", "total_amount", "status", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	order.Lines, err = or.readOrderLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (or *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select("id", "user_id", "total_amount", "status", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	for _, order := range list {
		order.Lines, err = or.readOrderLines(ctx, order.ID)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}

func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID uint64, status domain.OrderStatus) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Update("orders").
		Set("status", status).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": orderID}).
		Suffix("RETURNING id, user_id, total_amount, status, created_at, updated_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	order.Lines, err = or.readOrderLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (or *OrderRepository) readOrderLines(ctx context.Context, orderID uint64) ([]domain.OrderLine, error) {
	statement := or.db.QueryBuilder.
		Select("id", "order_id", "product_id", "quantity", "price_at_purchase").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		line := domain.OrderLine{}
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.Quantity,
			&line.PriceAtPurchase,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
