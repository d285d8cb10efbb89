package catalog

import (
	"context"

	"github.com/omnistock/stock-ledger-service/internal/model"
)

// Repository is the read-side boundary to the catalog. Item lifecycle is
// owned by the catalog service; the ledger only needs an item's base unit
// and price-per-base-unit.
type Repository interface {
	GetItemByID(ctx context.Context, id string) (*model.Item, error)
}
