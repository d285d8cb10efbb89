package usecase

import (
	"context"
	"slices"

	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/store"
)

type scopeResolver struct {
	repo   store.Repository
	logger logger.ZapLogger
}

func NewScopeResolver(repo store.Repository, log logger.ZapLogger) store.ScopeResolver {
	return &scopeResolver{
		repo:   repo,
		logger: log,
	}
}

func (r *scopeResolver) ResolveScope(ctx context.Context, principal *model.Principal) ([]string, error) {
	if principal == nil || principal.StoreID == "" {
		return nil, apperrors.Validation("principal has no home store")
	}
	if !principal.Role.Valid() {
		return nil, apperrors.Validation("unrecognized role: " + string(principal.Role))
	}

	if principal.Role != model.RoleManager {
		return []string{principal.StoreID}, nil
	}

	branches, err := r.repo.ListBranches(ctx, principal.StoreID)
	if err != nil {
		return nil, apperrors.Internal("failed to list branch stores", err)
	}

	scope := make([]string, 0, len(branches)+1)
	scope = append(scope, principal.StoreID)
	for _, b := range branches {
		scope = append(scope, b.ID)
	}
	return scope, nil
}

func (r *scopeResolver) ResolveHierarchy(ctx context.Context, storeID string) ([]string, error) {
	s, err := r.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, apperrors.Internal("failed to load store", err)
	}
	if s == nil {
		return nil, apperrors.NotFoundWithID("store", storeID)
	}

	// A branch resolves to its parent; the hierarchy is two levels deep,
	// so the parent is always the main store.
	mainID := s.ID
	if s.ParentStoreID != nil {
		mainID = *s.ParentStoreID
	}

	branches, err := r.repo.ListBranches(ctx, mainID)
	if err != nil {
		return nil, apperrors.Internal("failed to list branch stores", err)
	}

	hierarchy := make([]string, 0, len(branches)+1)
	hierarchy = append(hierarchy, mainID)
	for _, b := range branches {
		hierarchy = append(hierarchy, b.ID)
	}
	return hierarchy, nil
}

func (r *scopeResolver) Authorize(ctx context.Context, principal *model.Principal, targetStoreID string) error {
	if targetStoreID == "" {
		return apperrors.Validation("target store is required")
	}

	scope, err := r.ResolveScope(ctx, principal)
	if err != nil {
		return err
	}
	if !slices.Contains(scope, targetStoreID) {
		return apperrors.ScopeForbidden(targetStoreID)
	}
	return nil
}

func (r *scopeResolver) NarrowScope(ctx context.Context, principal *model.Principal, requested []string) ([]string, error) {
	scope, err := r.ResolveScope(ctx, principal)
	if err != nil {
		return nil, err
	}
	if len(requested) == 0 {
		return scope, nil
	}

	// The whole request fails when any requested store falls outside the
	// resolved scope; partial filtering would hide the violation.
	for _, id := range requested {
		if !slices.Contains(scope, id) {
			return nil, apperrors.ScopeForbidden(id)
		}
	}
	return requested, nil
}
