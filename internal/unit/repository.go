package unit

import (
	"context"

	"github.com/omnistock/stock-ledger-service/internal/model"
)

type Repository interface {
	// GetByID returns nil without error when no such unit exists.
	GetByID(ctx context.Context, id string) (*model.UnitOfMeasurement, error)
	ListByFamily(ctx context.Context, family model.UnitFamily) ([]model.UnitOfMeasurement, error)
}
