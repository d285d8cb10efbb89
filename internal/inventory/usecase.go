package inventory

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/model"
)

// UseCase is the adjustment orchestrator: it authorizes store scope,
// converts presentation quantities into base units, drives the ledger's
// atomic adjust, and converts results back for the response.
type UseCase interface {
	GetStock(ctx context.Context, principal *model.Principal, itemID, storeID string) (*dto.StockView, error)
	UpsertRecord(ctx context.Context, principal *model.Principal, input *dto.UpsertRecordInput) (*dto.StockView, error)
	ListRecords(ctx context.Context, principal *model.Principal, filters *dto.RecordFilters) ([]model.InventoryRecord, int, error)

	// AddStock is the stock-in path (purchase receipt and friends). The
	// quantity must be strictly positive and the unit explicitly supplied.
	AddStock(ctx context.Context, principal *model.Principal, input *dto.AddStockInput) (*dto.AdjustResult, error)

	// ManualAdjust accepts a caller-signed quantity and a recognized
	// transaction type/source.
	ManualAdjust(ctx context.Context, principal *model.Principal, input *dto.ManualAdjustInput) (*dto.AdjustResult, error)

	// SaleDecrement accepts only a positive consumed quantity and negates
	// it internally.
	SaleDecrement(ctx context.Context, principal *model.Principal, input *dto.SaleDecrementInput) (*dto.AdjustResult, error)

	// DecrementForOrder applies one negative adjustment per order line
	// inside tx, which the order-creation workflow owns. Any line failing
	// with InsufficientStock propagates so the caller rolls back the order
	// header, every line, and every decrement already applied.
	DecrementForOrder(ctx context.Context, tx *sqlx.Tx, input *dto.OrderDecrementInput) error

	// ApplyOrderDecrements is DecrementForOrder in a ledger-owned
	// transaction, for ingress paths (the order-events listener) that
	// have no transaction of their own.
	ApplyOrderDecrements(ctx context.Context, input *dto.OrderDecrementInput) error

	ListTransactions(ctx context.Context, principal *model.Principal, filters *dto.TransactionFilters) ([]model.StockTransaction, int, error)
}
