package usecase

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/audit"
	"github.com/omnistock/stock-ledger-service/internal/catalog"
	"github.com/omnistock/stock-ledger-service/internal/inventory"
	"github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/store"
	"github.com/omnistock/stock-ledger-service/internal/unit"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo    inventory.Repository
	items   catalog.Repository
	units   unit.UseCase
	scope   store.ScopeResolver
	auditor audit.Recorder
	logger  logger.ZapLogger
}

func NewInventoryUseCase(
	repo inventory.Repository,
	items catalog.Repository,
	units unit.UseCase,
	scope store.ScopeResolver,
	auditor audit.Recorder,
	log logger.ZapLogger,
) inventory.UseCase {
	return &inventoryUseCase{
		repo:    repo,
		items:   items,
		units:   units,
		scope:   scope,
		auditor: auditor,
		logger:  log,
	}
}

// internalErr keeps the taxonomy intact: an AppError passes through, every
// other failure is wrapped as Internal.
func internalErr(msg string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Internal(msg, err)
}

func (uc *inventoryUseCase) fetchItem(ctx context.Context, itemID string) (*model.Item, error) {
	item, err := uc.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, apperrors.Internal("failed to load item", err)
	}
	if item == nil {
		return nil, apperrors.NotFoundWithID("item", itemID)
	}
	return item, nil
}

func (uc *inventoryUseCase) quantityView(baseQty float64, u *model.UnitOfMeasurement) (dto.QuantityView, error) {
	pres, err := uc.units.ToPresentation(baseQty, u)
	if err != nil {
		return dto.QuantityView{}, err
	}
	return dto.QuantityView{
		Base:         baseQty,
		Presentation: pres,
		UnitID:       u.ID,
		UnitSymbol:   u.Symbol,
	}, nil
}

func (uc *inventoryUseCase) stockView(rec *model.InventoryRecord, u *model.UnitOfMeasurement) (*dto.StockView, error) {
	qty, err := uc.quantityView(rec.Quantity, u)
	if err != nil {
		return nil, err
	}
	minLevel, err := uc.quantityView(rec.MinStockLevel, u)
	if err != nil {
		return nil, err
	}
	return &dto.StockView{
		Record:        rec,
		Quantity:      qty,
		MinStockLevel: minLevel,
		Status:        rec.Status,
	}, nil
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, principal *model.Principal, itemID, storeID string) (*dto.StockView, error) {
	if err := uc.scope.Authorize(ctx, principal, storeID); err != nil {
		return nil, err
	}

	item, err := uc.fetchItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	rec, err := uc.repo.GetRecord(ctx, itemID, storeID)
	if err != nil {
		return nil, apperrors.Internal("failed to load inventory record", err)
	}
	if rec == nil {
		return nil, apperrors.NotFound("inventory record").
			WithDetail("item_id", itemID).
			WithDetail("store_id", storeID)
	}

	u, err := uc.units.FetchUnit(ctx, item.PresentationUnitID)
	if err != nil {
		return nil, err
	}
	return uc.stockView(rec, u)
}

func (uc *inventoryUseCase) UpsertRecord(ctx context.Context, principal *model.Principal, input *dto.UpsertRecordInput) (*dto.StockView, error) {
	if input.MinStockLevel < 0 {
		return nil, apperrors.Validation("minimum stock level must not be negative")
	}
	if err := uc.scope.Authorize(ctx, principal, input.StoreID); err != nil {
		return nil, err
	}

	item, err := uc.fetchItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	minBase := input.MinStockLevel
	if input.UnitID != "" {
		u, err := uc.units.FetchUnit(ctx, input.UnitID)
		if err != nil {
			return nil, err
		}
		minBase, err = uc.units.ToBase(input.MinStockLevel, u)
		if err != nil {
			return nil, err
		}
	}

	rec, err := uc.repo.UpsertRecord(ctx, &model.InventoryRecord{
		ItemID:        input.ItemID,
		StoreID:       input.StoreID,
		MinStockLevel: minBase,
	})
	if err != nil {
		return nil, internalErr("failed to upsert inventory record", err)
	}

	uc.auditor.Record(ctx, audit.Entry{
		Action:      "inventory.record.upserted",
		PerformedBy: principal.ID,
		Role:        string(principal.Role),
		ItemID:      input.ItemID,
		StoreID:     input.StoreID,
		Detail:      fmt.Sprintf("min stock level %v", minBase),
	})

	u, err := uc.units.FetchUnit(ctx, item.PresentationUnitID)
	if err != nil {
		return nil, err
	}
	return uc.stockView(rec, u)
}

func (uc *inventoryUseCase) ListRecords(ctx context.Context, principal *model.Principal, filters *dto.RecordFilters) ([]model.InventoryRecord, int, error) {
	storeIDs, err := uc.scope.NarrowScope(ctx, principal, filters.StoreIDs)
	if err != nil {
		return nil, 0, err
	}
	scoped := *filters
	scoped.StoreIDs = storeIDs

	records, count, err := uc.repo.FindRecords(ctx, &scoped)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list inventory records", err)
	}
	return records, count, nil
}

func (uc *inventoryUseCase) AddStock(ctx context.Context, principal *model.Principal, input *dto.AddStockInput) (*dto.AdjustResult, error) {
	if input.Quantity <= 0 {
		return nil, apperrors.Validation("stock-in quantity must be strictly positive")
	}
	if input.UnitID == "" {
		return nil, apperrors.Validation("unit is required for stock-in")
	}
	source := input.Source
	if source == "" {
		source = model.SourcePurchaseReceipt
	}
	if !source.Valid() {
		return nil, apperrors.Validation("unrecognized transaction source: " + string(source))
	}

	if err := uc.scope.Authorize(ctx, principal, input.StoreID); err != nil {
		return nil, err
	}
	if _, err := uc.fetchItem(ctx, input.ItemID); err != nil {
		return nil, err
	}

	// Conversion runs through the caller-supplied unit, which may differ
	// from the item's stored presentation default.
	u, err := uc.units.FetchUnit(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	delta, err := uc.units.ToBase(input.Quantity, u)
	if err != nil {
		return nil, err
	}

	return uc.applyAdjustment(ctx, principal, &dto.AdjustParams{
		ItemID:      input.ItemID,
		StoreID:     input.StoreID,
		Delta:       delta,
		Type:        model.TypeComingIn,
		Source:      source,
		PerformedBy: optional(principal.ID),
		DocumentID:  optional(input.DocumentID),
		Notes:       input.Notes,
	}, u, "inventory.stock.received")
}

func (uc *inventoryUseCase) ManualAdjust(ctx context.Context, principal *model.Principal, input *dto.ManualAdjustInput) (*dto.AdjustResult, error) {
	if input.Quantity == 0 {
		return nil, apperrors.Validation("adjustment quantity must be non-zero")
	}
	if !input.Type.Valid() {
		return nil, apperrors.Validation("unrecognized transaction type: " + string(input.Type))
	}
	if input.Type != model.TypeForDelta(input.Quantity) {
		return nil, apperrors.Validation("transaction type does not match quantity sign")
	}
	source := input.Source
	if source == "" {
		source = model.SourceInventoryAdjustment
	}
	if !source.Valid() {
		return nil, apperrors.Validation("unrecognized transaction source: " + string(source))
	}

	if err := uc.scope.Authorize(ctx, principal, input.StoreID); err != nil {
		return nil, err
	}
	item, err := uc.fetchItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	u, err := uc.units.FetchUnit(ctx, item.PresentationUnitID)
	if err != nil {
		return nil, err
	}
	delta, err := uc.units.ToBase(input.Quantity, u)
	if err != nil {
		return nil, err
	}

	return uc.applyAdjustment(ctx, principal, &dto.AdjustParams{
		ItemID:      input.ItemID,
		StoreID:     input.StoreID,
		Delta:       delta,
		Type:        input.Type,
		Source:      source,
		PerformedBy: optional(principal.ID),
		Notes:       input.Notes,
	}, u, "inventory.stock.adjusted")
}

func (uc *inventoryUseCase) SaleDecrement(ctx context.Context, principal *model.Principal, input *dto.SaleDecrementInput) (*dto.AdjustResult, error) {
	if input.Quantity <= 0 {
		return nil, apperrors.Validation("consumed quantity must be strictly positive")
	}

	if err := uc.scope.Authorize(ctx, principal, input.StoreID); err != nil {
		return nil, err
	}
	item, err := uc.fetchItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	u, err := uc.units.FetchUnit(ctx, item.PresentationUnitID)
	if err != nil {
		return nil, err
	}
	base, err := uc.units.ToBase(input.Quantity, u)
	if err != nil {
		return nil, err
	}

	return uc.applyAdjustment(ctx, principal, &dto.AdjustParams{
		ItemID:      input.ItemID,
		StoreID:     input.StoreID,
		Delta:       -base,
		Type:        model.TypeGoingOut,
		Source:      model.SourceSale,
		PerformedBy: optional(principal.ID),
		DocumentID:  optional(input.DocumentID),
		Notes:       input.Notes,
	}, u, "inventory.stock.sold")
}

// applyAdjustment drives the ledger and converts the committed result back
// to presentation units. The audit entry goes out after the commit only;
// its loss never undoes the mutation.
func (uc *inventoryUseCase) applyAdjustment(
	ctx context.Context,
	principal *model.Principal,
	params *dto.AdjustParams,
	u *model.UnitOfMeasurement,
	action string,
) (*dto.AdjustResult, error) {
	rec, txn, err := uc.repo.Adjust(ctx, params)
	if err != nil {
		return nil, internalErr("failed to adjust stock", err)
	}

	docID := ""
	if params.DocumentID != nil {
		docID = *params.DocumentID
	}
	uc.auditor.Record(ctx, audit.Entry{
		Action:      action,
		PerformedBy: principal.ID,
		Role:        string(principal.Role),
		ItemID:      params.ItemID,
		StoreID:     params.StoreID,
		DocumentID:  docID,
		Detail:      fmt.Sprintf("delta %v, resulting %v", params.Delta, txn.ResultingQuantity),
	})

	qty, err := uc.quantityView(rec.Quantity, u)
	if err != nil {
		return nil, err
	}
	return &dto.AdjustResult{
		Record:      rec,
		Transaction: txn,
		Quantity:    qty,
	}, nil
}

func (uc *inventoryUseCase) DecrementForOrder(ctx context.Context, tx *sqlx.Tx, input *dto.OrderDecrementInput) error {
	performedBy := optional(input.PerformedBy)

	for _, line := range input.Lines {
		if line.BaseQuantity <= 0 {
			return apperrors.Validation("order line quantity must be strictly positive").
				WithDetail("item_id", line.ItemID)
		}

		_, _, err := uc.repo.AdjustInTx(ctx, tx, &dto.AdjustParams{
			ItemID:      line.ItemID,
			StoreID:     input.StoreID,
			Delta:       -line.BaseQuantity,
			Type:        model.TypeGoingOut,
			Source:      model.SourceSale,
			PerformedBy: performedBy,
			DocumentID:  optional(input.OrderID),
			Notes:       "order sale",
		})
		if err != nil {
			// InsufficientStock must reach the transaction owner intact so
			// the whole order rolls back.
			uc.logger.Warn("order line decrement failed",
				zap.String("order_id", input.OrderID),
				zap.String("item_id", line.ItemID),
				zap.Error(err),
			)
			return internalErr("failed to decrement stock for order line", err)
		}
	}
	return nil
}

func (uc *inventoryUseCase) ApplyOrderDecrements(ctx context.Context, input *dto.OrderDecrementInput) error {
	return uc.repo.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return uc.DecrementForOrder(ctx, tx, input)
	})
}

func (uc *inventoryUseCase) ListTransactions(ctx context.Context, principal *model.Principal, filters *dto.TransactionFilters) ([]model.StockTransaction, int, error) {
	storeIDs, err := uc.scope.NarrowScope(ctx, principal, filters.StoreIDs)
	if err != nil {
		return nil, 0, err
	}
	scoped := *filters
	scoped.StoreIDs = storeIDs

	txns, count, err := uc.repo.ListTransactions(ctx, &scoped)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list stock transactions", err)
	}
	return txns, count, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
