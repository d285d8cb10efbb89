package store

import (
	"context"

	"github.com/omnistock/stock-ledger-service/internal/model"
)

// ScopeResolver computes the set of store IDs a principal may read or
// mutate. Every inventory operation intersects its target with this set
// before touching storage; a target outside it fails ScopeForbidden, never
// NotFound.
type ScopeResolver interface {
	// ResolveScope returns the principal's readable/writable stores: the
	// home store alone for non-managers, the home store plus its branches
	// for managers.
	ResolveScope(ctx context.Context, principal *model.Principal) ([]string, error)

	// ResolveHierarchy maps any store (main or branch) to its main store
	// plus all of that main store's branches.
	ResolveHierarchy(ctx context.Context, storeID string) ([]string, error)

	// Authorize fails with ScopeForbidden when targetStoreID is outside the
	// principal's resolved scope.
	Authorize(ctx context.Context, principal *model.Principal, targetStoreID string) error

	// NarrowScope validates an explicit target subset against the resolved
	// scope. An empty request means the full scope.
	NarrowScope(ctx context.Context, principal *model.Principal, requested []string) ([]string, error)
}
