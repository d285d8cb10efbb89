package dto

import "github.com/omnistock/stock-ledger-service/internal/model"

// QuantityView carries both sides of a converted quantity so callers never
// re-derive the conversion themselves.
type QuantityView struct {
	Base         float64 `json:"base_quantity"`
	Presentation float64 `json:"presentation_quantity"`
	UnitID       string  `json:"unit_id"`
	UnitSymbol   string  `json:"unit_symbol"`
}

type StockView struct {
	Record        *model.InventoryRecord `json:"record"`
	Quantity      QuantityView           `json:"quantity"`
	MinStockLevel QuantityView           `json:"min_stock_level"`
	Status        model.StockStatus      `json:"status"`
}

type AdjustResult struct {
	Record      *model.InventoryRecord  `json:"record"`
	Transaction *model.StockTransaction `json:"transaction"`
	Quantity    QuantityView            `json:"quantity"`
}
