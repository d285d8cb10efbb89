package model

import "time"

type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// StatusFor derives the stock status from a base-unit quantity and the
// record's minimum stock level. Zero is always out_of_stock, even when
// the minimum is zero too.
func StatusFor(quantity, minStockLevel float64) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= minStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// InventoryRecord is the materialized current quantity for one (item, store)
// pair, in base units. It is mutated only through the ledger's adjust
// operation; the transaction log is the source of truth.
type InventoryRecord struct {
	ID            string      `db:"id" json:"id"`
	ItemID        string      `db:"item_id" json:"item_id"`
	StoreID       string      `db:"store_id" json:"store_id"`
	Quantity      float64     `db:"quantity" json:"quantity"`
	MinStockLevel float64     `db:"min_stock_level" json:"min_stock_level"`
	Status        StockStatus `db:"status" json:"status"`
	LastCountedAt *time.Time  `db:"last_counted_at" json:"last_counted_at"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

type TransactionType string

const (
	TypeComingIn TransactionType = "coming_in"
	TypeGoingOut TransactionType = "going_out"
)

func (t TransactionType) Valid() bool {
	return t == TypeComingIn || t == TypeGoingOut
}

// TypeForDelta maps a signed base-unit delta onto the transaction type.
func TypeForDelta(delta float64) TransactionType {
	if delta < 0 {
		return TypeGoingOut
	}
	return TypeComingIn
}

type TransactionSource string

const (
	SourcePurchaseReceipt     TransactionSource = "purchase_receipt"
	SourceProductionUsage     TransactionSource = "production_usage"
	SourceInventoryAdjustment TransactionSource = "inventory_adjustment"
	SourceWastage             TransactionSource = "wastage"
	SourceSale                TransactionSource = "sale"
	SourceTransferIn          TransactionSource = "transfer_in"
	SourceTransferOut         TransactionSource = "transfer_out"
)

func (s TransactionSource) Valid() bool {
	switch s {
	case SourcePurchaseReceipt, SourceProductionUsage, SourceInventoryAdjustment,
		SourceWastage, SourceSale, SourceTransferIn, SourceTransferOut:
		return true
	}
	return false
}

// StockTransaction is one append-only ledger row. ResultingQuantity is the
// record's quantity immediately after this change was applied, so replaying
// the log in commit order reconstructs the current quantity.
type StockTransaction struct {
	ID                string            `db:"id" json:"id"`
	ItemID            string            `db:"item_id" json:"item_id"`
	StoreID           string            `db:"store_id" json:"store_id"`
	PerformedBy       *string           `db:"performed_by" json:"performed_by"`
	Type              TransactionType   `db:"transaction_type" json:"transaction_type"`
	Source            TransactionSource `db:"source" json:"source"`
	QuantityChange    float64           `db:"quantity_change" json:"quantity_change"`
	ResultingQuantity float64           `db:"resulting_quantity" json:"resulting_quantity"`
	SourceDocumentID  *string           `db:"source_document_id" json:"source_document_id"`
	Notes             string            `db:"notes" json:"notes"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}
