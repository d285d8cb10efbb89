package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/platform/postgres"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetRecord(ctx context.Context, itemID, storeID string) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	query := `SELECT * FROM inventory_records WHERE item_id = $1 AND store_id = $2`

	err := r.DB.GetContext(ctx, &rec, query, itemID, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PGRepository) FindRecords(ctx context.Context, f *dto.RecordFilters) ([]model.InventoryRecord, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if len(f.StoreIDs) > 0 {
		conditions = append(conditions, "store_id IN (?)")
		args = append(args, f.StoreIDs)
	}
	if f.ItemID != "" {
		conditions = append(conditions, "item_id = ?")
		args = append(args, f.ItemID)
	}
	if f.LowStock {
		conditions = append(conditions, "status IN (?)")
		args = append(args, []string{string(model.StatusLowStock), string(model.StatusOutOfStock)})
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.In("SELECT count(*) FROM inventory_records"+whereClause, args...)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	listQuery := "SELECT * FROM inventory_records" + whereClause + " ORDER BY updated_at DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		listQuery += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	query, listArgs, err := sqlx.In(listQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	var records []model.InventoryRecord
	err = r.DB.SelectContext(ctx, &records, r.DB.Rebind(query), listArgs...)
	return records, count, err
}

func (r *PGRepository) UpsertRecord(ctx context.Context, rec *model.InventoryRecord) (*model.InventoryRecord, error) {
	query := `
        INSERT INTO inventory_records (
            id, item_id, store_id, quantity, min_stock_level, status, created_at, updated_at
        )
        VALUES ($1, $2, $3, 0, $4, $5, $6, $6)
        ON CONFLICT (item_id, store_id)
        DO UPDATE SET
            min_stock_level = EXCLUDED.min_stock_level,
            status = CASE
                WHEN inventory_records.quantity = 0 THEN 'out_of_stock'
                WHEN inventory_records.quantity <= EXCLUDED.min_stock_level THEN 'low_stock'
                ELSE 'in_stock'
            END,
            updated_at = EXCLUDED.updated_at
        RETURNING *
    `
	now := time.Now()
	status := model.StatusFor(0, rec.MinStockLevel)

	var out model.InventoryRecord
	err := r.DB.GetContext(ctx, &out, query,
		uuid.New().String(), rec.ItemID, rec.StoreID, rec.MinStockLevel, status, now,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PGRepository) Adjust(ctx context.Context, params *dto.AdjustParams) (*model.InventoryRecord, *model.StockTransaction, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	rec, txn, err := r.adjust(ctx, tx, params)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return rec, txn, nil
}

func (r *PGRepository) AdjustInTx(ctx context.Context, tx *sqlx.Tx, params *dto.AdjustParams) (*model.InventoryRecord, *model.StockTransaction, error) {
	return r.adjust(ctx, tx, params)
}

// adjust runs the ledger protocol against q: ensure the record exists,
// apply the delta with a conditional UPDATE so the quantity can never pass
// below zero, then append the transaction row. The conditional UPDATE
// replaces a read-then-write pair; concurrent adjustments serialize on the
// row and a lost check is impossible.
func (r *PGRepository) adjust(ctx context.Context, q sqlx.ExtContext, params *dto.AdjustParams) (*model.InventoryRecord, *model.StockTransaction, error) {
	now := time.Now()

	ensureQuery := `
        INSERT INTO inventory_records (
            id, item_id, store_id, quantity, min_stock_level, status, created_at, updated_at
        )
        VALUES ($1, $2, $3, 0, 0, $4, $5, $5)
        ON CONFLICT (item_id, store_id) DO NOTHING
    `
	if _, err := q.ExecContext(ctx, ensureQuery,
		uuid.New().String(), params.ItemID, params.StoreID, model.StatusOutOfStock, now,
	); err != nil {
		return nil, nil, fmt.Errorf("ensure inventory record: %w", err)
	}

	updateQuery := `
        UPDATE inventory_records
        SET quantity = quantity + $1,
            status = CASE
                WHEN quantity + $1 = 0 THEN 'out_of_stock'
                WHEN quantity + $1 <= min_stock_level THEN 'low_stock'
                ELSE 'in_stock'
            END,
            last_counted_at = $2,
            updated_at = $2
        WHERE item_id = $3 AND store_id = $4 AND quantity + $1 >= 0
        RETURNING *
    `
	var rec model.InventoryRecord
	err := sqlx.GetContext(ctx, q, &rec, updateQuery, params.Delta, now, params.ItemID, params.StoreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The record exists after the ensure step, so zero rows can
			// only mean the non-negativity guard rejected the delta.
			return nil, nil, apperrors.InsufficientStock(params.ItemID, params.StoreID)
		}
		return nil, nil, fmt.Errorf("update inventory record: %w", err)
	}

	txn := &model.StockTransaction{
		ID:                uuid.New().String(),
		ItemID:            params.ItemID,
		StoreID:           params.StoreID,
		PerformedBy:       params.PerformedBy,
		Type:              params.Type,
		Source:            params.Source,
		QuantityChange:    params.Delta,
		ResultingQuantity: rec.Quantity,
		SourceDocumentID:  params.DocumentID,
		Notes:             params.Notes,
		CreatedAt:         now,
	}

	insertQuery := `
        INSERT INTO stock_transactions (
            id, item_id, store_id, performed_by, transaction_type, source,
            quantity_change, resulting_quantity, source_document_id, notes, created_at
        )
        VALUES (
            :id, :item_id, :store_id, :performed_by, :transaction_type, :source,
            :quantity_change, :resulting_quantity, :source_document_id, :notes, :created_at
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, q, insertQuery, txn); err != nil {
		return nil, nil, fmt.Errorf("append stock transaction: %w", err)
	}

	return &rec, txn, nil
}

func (r *PGRepository) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return postgres.WithinTx(ctx, r.DB, fn)
}

func (r *PGRepository) ListTransactions(ctx context.Context, f *dto.TransactionFilters) ([]model.StockTransaction, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if len(f.StoreIDs) > 0 {
		conditions = append(conditions, "store_id IN (?)")
		args = append(args, f.StoreIDs)
	}
	if f.ItemID != "" {
		conditions = append(conditions, "item_id = ?")
		args = append(args, f.ItemID)
	}
	if f.Type != "" {
		conditions = append(conditions, "transaction_type = ?")
		args = append(args, string(f.Type))
	}
	if f.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, string(f.Source))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.In("SELECT count(*) FROM stock_transactions"+whereClause, args...)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	listQuery := "SELECT * FROM stock_transactions" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		listQuery += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	query, listArgs, err := sqlx.In(listQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	var txns []model.StockTransaction
	err = r.DB.SelectContext(ctx, &txns, r.DB.Rebind(query), listArgs...)
	return txns, count, err
}
