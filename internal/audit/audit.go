package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/omnistock/stock-ledger-service/internal/logger"
	"github.com/omnistock/stock-ledger-service/internal/platform/broker"
	"go.uber.org/zap"
)

// Entry is one activity event emitted after a ledger mutation commits.
type Entry struct {
	Action      string    `json:"action"`
	PerformedBy string    `json:"performed_by"`
	Role        string    `json:"role"`
	ItemID      string    `json:"item_id,omitempty"`
	StoreID     string    `json:"store_id,omitempty"`
	DocumentID  string    `json:"document_id,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Recorder is a best-effort, non-transactional sink. Record is called only
// after the ledger transaction has committed; a failed or lost entry never
// undoes or blocks the mutation (at-most-once-after-commit delivery).
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type kafkaRecorder struct {
	producer *broker.KafkaProducer
	logger   logger.ZapLogger
}

func NewKafkaRecorder(producer *broker.KafkaProducer, log logger.ZapLogger) Recorder {
	return &kafkaRecorder{
		producer: producer,
		logger:   log,
	}
}

func (r *kafkaRecorder) Record(ctx context.Context, entry Entry) {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("failed to marshal audit entry", zap.Error(err))
		return
	}

	// The request context may already be done once the commit returned;
	// the entry still gets its own short publish window.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := r.producer.Publish(pubCtx, []byte(entry.ItemID+":"+entry.StoreID), payload); err != nil {
		r.logger.Error("failed to publish audit entry",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
}

type logRecorder struct {
	logger logger.ZapLogger
}

// NewLogRecorder writes activity to the process log instead of kafka.
// Used when no broker is configured.
func NewLogRecorder(log logger.ZapLogger) Recorder {
	return &logRecorder{logger: log}
}

func (r *logRecorder) Record(_ context.Context, entry Entry) {
	r.logger.Info("activity",
		zap.String("action", entry.Action),
		zap.String("performed_by", entry.PerformedBy),
		zap.String("item_id", entry.ItemID),
		zap.String("store_id", entry.StoreID),
		zap.String("document_id", entry.DocumentID),
	)
}
