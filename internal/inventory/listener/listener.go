package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/omnistock/stock-ledger-service/internal/apperrors"
	"github.com/omnistock/stock-ledger-service/internal/inventory"
	"github.com/omnistock/stock-ledger-service/internal/inventory/dto"
	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/platform/broker"
	"go.uber.org/zap"
)

// OrderListener consumes order events from an external ordering channel
// and applies the corresponding stock decrements. All lines of one event
// apply atomically; an insufficient line rejects the whole event.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewOrderListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("starting order events listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping order events listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read order event", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID      string             `json:"id"`
	StoreID string             `json:"store_id"`
	Items   []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ItemID       string  `json:"item_id"`
	BaseQuantity float64 `json:"base_quantity"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	input := &dto.OrderDecrementInput{
		OrderID:     event.Payload.ID,
		StoreID:     event.Payload.StoreID,
		PerformedBy: "system",
	}
	for _, item := range event.Payload.Items {
		input.Lines = append(input.Lines, dto.OrderDecrementLine{
			ItemID:       item.ItemID,
			BaseQuantity: item.BaseQuantity,
		})
	}

	if err := l.uc.ApplyOrderDecrements(ctx, input); err != nil {
		if apperrors.IsCode(err, apperrors.CodeInsufficientStock) {
			// The upstream order is already committed; this is the known
			// reconciliation gap, flagged loudly instead of retried.
			l.logger.Warn("order event rejected for insufficient stock",
				zap.String("order_id", event.Payload.ID),
			)
			return
		}
		l.logger.Error("failed to apply order decrements",
			zap.String("order_id", event.Payload.ID),
			zap.Error(err),
		)
	}
}
