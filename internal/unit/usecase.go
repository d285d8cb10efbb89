package unit

import (
	"context"

	"github.com/omnistock/stock-ledger-service/internal/model"
)

// UseCase converts between presentation units and the canonical base unit.
// Quantities and prices are stored per base unit; presentation values exist
// only at the API edge.
type UseCase interface {
	FetchUnit(ctx context.Context, id string) (*model.UnitOfMeasurement, error)
	ListByFamily(ctx context.Context, family model.UnitFamily) ([]model.UnitOfMeasurement, error)

	ToBase(presentationQty float64, u *model.UnitOfMeasurement) (float64, error)
	ToPresentation(baseQty float64, u *model.UnitOfMeasurement) (float64, error)
	PriceToBase(presentationPrice float64, u *model.UnitOfMeasurement) (float64, error)
	PriceToPresentation(basePricePerUnit float64, u *model.UnitOfMeasurement) (float64, error)
}
