package store

import (
	"context"

	"github.com/omnistock/stock-ledger-service/internal/model"
)

type Repository interface {
	// GetByID returns nil without error when no such store exists.
	GetByID(ctx context.Context, id string) (*model.Store, error)
	// ListBranches returns every store whose parent is the given store.
	ListBranches(ctx context.Context, parentID string) ([]model.Store, error)
}
