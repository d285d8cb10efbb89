package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	BaseModel
	StoreID   string      `db:"store_id" json:"store_id"`
	CreatedBy string      `db:"created_by" json:"created_by"`
	Status    OrderStatus `db:"status" json:"status"`
	Total     float64     `db:"total" json:"total"`
	Notes     string      `db:"notes" json:"notes"`
}

// OrderItem quantities are in the item's base units; conversion from the
// presentation unit happens before the order is persisted.
type OrderItem struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	ItemID    string    `db:"item_id" json:"item_id"`
	Quantity  float64   `db:"quantity" json:"quantity"`
	UnitPrice float64   `db:"unit_price" json:"unit_price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
