package model

// Item is a menu item or raw material tracked by the ledger. Catalog
// lifecycle is owned elsewhere; this service only reads items for their
// base unit and price-per-base-unit.
type Item struct {
	BaseModel
	Name               string  `db:"name" json:"name"`
	BaseUnitID         string  `db:"base_unit_id" json:"base_unit_id"`
	PresentationUnitID string  `db:"presentation_unit_id" json:"presentation_unit_id"` // default display unit, may equal the base unit
	CostPerBaseUnit    float64 `db:"cost_per_base_unit" json:"cost_per_base_unit"`
	IsActive           bool    `db:"is_active" json:"is_active"`
}
