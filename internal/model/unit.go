package model

type UnitFamily string

const (
	UnitFamilyWeight UnitFamily = "weight"
	UnitFamilyVolume UnitFamily = "volume"
	UnitFamilyCount  UnitFamily = "count"
	UnitFamilyLength UnitFamily = "length"
)

// UnitOfMeasurement converts a human-facing quantity into the family's
// canonical base unit (e.g. kilogram -> gram, factor 1000). The base unit
// of a family has factor 1 exactly.
type UnitOfMeasurement struct {
	BaseModel
	Name                   string     `db:"name" json:"name"`
	Symbol                 string     `db:"symbol" json:"symbol"`
	Family                 UnitFamily `db:"family" json:"family"`
	ConversionFactorToBase float64    `db:"conversion_factor_to_base" json:"conversion_factor_to_base"`
	IsBaseUnit             bool       `db:"is_base_unit" json:"is_base_unit"`
}
