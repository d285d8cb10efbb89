package dto

type CreateOrderLine struct {
	ItemID   string
	Quantity float64 // presentation units of the item's default unit, must be > 0
}

type CreateOrderInput struct {
	StoreID string
	Notes   string
	Lines   []CreateOrderLine
}
