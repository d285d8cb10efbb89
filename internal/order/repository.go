package order

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/model"
)

type Repository interface {
	// CreateWithDecrements persists the order header and lines and runs
	// decrement against the same transaction. Any error, including an
	// InsufficientStock failure from a decrement, rolls back the header,
	// every line and every decrement already applied.
	CreateWithDecrements(ctx context.Context, o *model.Order, items []model.OrderItem, decrement func(tx *sqlx.Tx) error) error

	// GetByID returns nil without error when no such order exists.
	GetByID(ctx context.Context, id string) (*model.Order, []model.OrderItem, error)
}
