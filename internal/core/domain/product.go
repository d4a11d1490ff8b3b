package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type Product struct {
	ID        uint64
	Name      string
	Price     decimal.Decimal
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
