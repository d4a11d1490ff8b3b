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

const productColumns = "id, name, price, category, created_at, updated_at"

type ProductRepository struct {
	db *storage.DB
}

func NewProductRepository(db *storage.DB) (*ProductRepository, error) {
	return &ProductRepository{db: db}, nil
}

func (pr *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := pr.db.QueryBuilder.
		Insert("products").
		Columns("name", "price", "category").
		Values(product.Name, product.Price, product.Category).
		Suffix("RETURNING " + productColumns)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	created := domain.Product{}
	err = pr.db.QueryRow(ctx, sql, args...).Scan(
		&created.ID,
		&created.Name,
		&created.Price,
		&created.Category,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return nil, domain.ErrInvalidProductPrice
		}
		return nil, err
	}

	return &created, nil
}

func (pr *ProductRepository) ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	statement := pr.db.QueryBuilder.
		Select(productColumns).
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = pr.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Category,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (pr *ProductRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	statement := pr.db.QueryBuilder.
		Select(productColumns).
		From("products").
		OrderBy("id ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := pr.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Product, 0)
	for rows.Next() {
		product := domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Category,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &product)
	}

	return list, rows.Err()
}

// UpdateProduct applies only the fields present in update. The
// updated_at refresh is left to the table trigger.
func (pr *ProductRepository) UpdateProduct(ctx context.Context, productID uint64, update port.ProductUpdate) (*domain.Product, error) {
	statement := pr.db.QueryBuilder.
		Update("products").
		Where(sq.Eq{"id": productID}).
		Suffix("RETURNING " + productColumns)

	if update.Name != nil {
		statement = statement.Set("name", *update.Name)
	}
	if update.Price != nil {
		statement = statement.Set("price", *update.Price)
	}
	if update.Category != nil {
		statement = statement.Set("category", *update.Category)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = pr.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Category,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return nil, domain.ErrInvalidProductPrice
		}
		return nil, err
	}

	return &product, nil
}

func (pr *ProductRepository) DeleteProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	statement := pr.db.QueryBuilder.
		Delete("products").
		Where(sq.Eq{"id": productID}).
		Suffix("RETURNING " + productColumns)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = pr.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Category,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &product, nil
}
