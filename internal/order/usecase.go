package order

import (
	"context"

	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/order/dto"
)

type UseCase interface {
	// Create writes the order header, its lines and one stock decrement
	// per line as a single transaction.
	Create(ctx context.Context, principal *model.Principal, input *dto.CreateOrderInput) (*dto.OrderView, error)
	Get(ctx context.Context, principal *model.Principal, orderID string) (*dto.OrderView, error)
}
