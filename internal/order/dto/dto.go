package dto

import "github.com/omnistock/stock-ledger-service/internal/model"

type OrderView struct {
	Order *model.Order      `json:"order"`
	Items []model.OrderItem `json:"items"`
}
