package dto

import "github.com/omnistock/stock-ledger-service/internal/model"

type UpsertRecordInput struct {
	ItemID        string
	StoreID       string
	MinStockLevel float64
	// UnitID converts MinStockLevel to base units. Empty means the item's
	// base unit (no conversion).
	UnitID string
}

type AddStockInput struct {
	ItemID   string
	StoreID  string
	Quantity float64 // presentation units, must be > 0
	// UnitID is required and may differ from the item's stored default.
	UnitID     string
	Source     model.TransactionSource
	DocumentID string
	Notes      string
}

type ManualAdjustInput struct {
	ItemID   string
	StoreID  string
	Quantity float64 // signed, presentation units of the item's unit, must be != 0
	Type     model.TransactionType
	Source   model.TransactionSource
	Notes    string
}

type SaleDecrementInput struct {
	ItemID     string
	StoreID    string
	Quantity   float64 // consumed presentation quantity, must be > 0
	DocumentID string
	Notes      string
}

type OrderDecrementLine struct {
	ItemID       string
	BaseQuantity float64 // base units, > 0, negated internally
}

type OrderDecrementInput struct {
	OrderID     string
	StoreID     string
	PerformedBy string
	Lines       []OrderDecrementLine
}

// AdjustParams is the ledger-level request: a signed base-unit delta plus
// the metadata recorded on the transaction row.
type AdjustParams struct {
	ItemID      string
	StoreID     string
	Delta       float64
	Type        model.TransactionType
	Source      model.TransactionSource
	PerformedBy *string
	DocumentID  *string
	Notes       string
}

type RecordFilters struct {
	StoreIDs []string
	ItemID   string
	LowStock bool
	Page     int
	PageSize int
}

type TransactionFilters struct {
	StoreIDs []string
	ItemID   string
	Type     model.TransactionType
	Source   model.TransactionSource
	Page     int
	PageSize int
}
