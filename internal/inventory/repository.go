package inventory

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/model"
)

type Repository interface {
	// GetRecord returns nil without error when no record exists yet.
	GetRecord(ctx context.Context, itemID, storeID string) (*model.InventoryRecord, error)
	FindRecords(ctx context.Context, filters *dto.RecordFilters) ([]model.InventoryRecord, int, error)

	// UpsertRecord creates the (item, store) record or updates its minimum
	// stock level. Quantity is never touched here.
	UpsertRecord(ctx context.Context, rec *model.InventoryRecord) (*model.InventoryRecord, error)

	// Adjust applies a signed base-unit delta and appends the transaction
	// row in one atomic unit of work it owns. The update is conditional on
	// the resulting quantity staying non-negative; a violation fails with
	// InsufficientStock and leaves no persisted change.
	Adjust(ctx context.Context, params *dto.AdjustParams) (*model.InventoryRecord, *model.StockTransaction, error)

	// AdjustInTx is Adjust composed into a caller-owned transaction. The
	// caller commits or rolls back; an InsufficientStock failure must make
	// it roll back everything.
	AdjustInTx(ctx context.Context, tx *sqlx.Tx, params *dto.AdjustParams) (*model.InventoryRecord, *model.StockTransaction, error)

	// WithinTx runs fn inside one repository-owned transaction, for
	// callers that need multi-line atomicity without owning a handle.
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error

	ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.StockTransaction, int, error)
}
