package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/audit"
	"github.com/omnistock/stock-ledger-service/internal/catalog"
	"github.com/omnistock/stock-ledger-service/internal/inventory"
	invdto "github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/model"
	"github.com/omnistock/stock-ledger-service/internal/order"
	"github.com/omnistock/stock-ledger-service/internal/order/dto"
	"github.com/omnistock/stock-ledger-service/internal/store"
	"github.com/omnistock/stock-ledger-service/internal/unit"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo    order.Repository
	items   catalog.Repository
	units   unit.UseCase
	stock   inventory.UseCase
	scope   store.ScopeResolver
	auditor audit.Recorder
	logger  logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	items catalog.Repository,
	units unit.UseCase,
	stock inventory.UseCase,
	scope store.ScopeResolver,
	auditor audit.Recorder,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:    repo,
		items:   items,
		units:   units,
		stock:   stock,
		scope:   scope,
		auditor: auditor,
		logger:  log,
	}
}

func (uc *orderUseCase) Create(ctx context.Context, principal *model.Principal, input *dto.CreateOrderInput) (*dto.OrderView, error) {
	if len(input.Lines) == 0 {
		return nil, apperrors.Validation("order must have at least one line")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperrors.Validation("order line quantity must be strictly positive").
				WithDetail("item_id", line.ItemID)
		}
	}

	if err := uc.scope.Authorize(ctx, principal, input.StoreID); err != nil {
		return nil, err
	}

	now := time.Now()
	orderID := uuid.New().String()

	var (
		items    []model.OrderItem
		decLines []invdto.OrderDecrementLine
		total    float64
	)
	for _, line := range input.Lines {
		item, err := uc.items.GetItemByID(ctx, line.ItemID)
		if err != nil {
			return nil, apperrors.Internal("failed to load item", err)
		}
		if item == nil {
			return nil, apperrors.NotFoundWithID("item", line.ItemID)
		}

		u, err := uc.units.FetchUnit(ctx, item.PresentationUnitID)
		if err != nil {
			return nil, err
		}
		baseQty, err := uc.units.ToBase(line.Quantity, u)
		if err != nil {
			return nil, err
		}

		items = append(items, model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ItemID:    line.ItemID,
			Quantity:  baseQty,
			UnitPrice: item.CostPerBaseUnit,
			CreatedAt: now,
		})
		decLines = append(decLines, invdto.OrderDecrementLine{
			ItemID:       line.ItemID,
			BaseQuantity: baseQty,
		})
		total += baseQty * item.CostPerBaseUnit
	}

	o := &model.Order{
		BaseModel: model.BaseModel{
			ID:        orderID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		StoreID:   input.StoreID,
		CreatedBy: principal.ID,
		Status:    model.OrderStatusCompleted,
		Total:     total,
		Notes:     input.Notes,
	}

	// Header, lines and stock decrements commit or roll back together.
	err := uc.repo.CreateWithDecrements(ctx, o, items, func(tx *sqlx.Tx) error {
		return uc.stock.DecrementForOrder(ctx, tx, &invdto.OrderDecrementInput{
			OrderID:     orderID,
			StoreID:     input.StoreID,
			PerformedBy: principal.ID,
			Lines:       decLines,
		})
	})
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.Internal("failed to create order", err)
	}

	uc.auditor.Record(ctx, audit.Entry{
		Action:      "order.created",
		PerformedBy: principal.ID,
		Role:        string(principal.Role),
		StoreID:     input.StoreID,
		DocumentID:  orderID,
		Detail:      fmt.Sprintf("%d lines, total %v", len(items), total),
	})
	uc.logger.Info("order created",
		zap.String("order_id", orderID),
		zap.String("store_id", input.StoreID),
		zap.Int("lines", len(items)),
	)

	return &dto.OrderView{Order: o, Items: items}, nil
}

func (uc *orderUseCase) Get(ctx context.Context, principal *model.Principal, orderID string) (*dto.OrderView, error) {
	o, items, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.Internal("failed to load order", err)
	}
	if o == nil {
		return nil, apperrors.NotFoundWithID("order", orderID)
	}

	if err := uc.scope.Authorize(ctx, principal, o.StoreID); err != nil {
		return nil, err
	}
	return &dto.OrderView{Order: o, Items: items}, nil
}
