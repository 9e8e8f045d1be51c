package payments

import (
	"context"
	"encoding/json"
	"log/slog"

	"vigil/internal/payments/metrics"
	"vigil/internal/payments/models"
	"vigil/internal/platform/kafka/consumer"
)

// Handler consumes payment events from the inbound topic. Malformed or
// invalid messages are logged and committed; redelivering them would fail
// identically forever and stall the partition.
type Handler struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func NewHandler(orchestrator *Orchestrator, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		logger:       logger,
		metrics:      m,
	}
}

func (h *Handler) Handle(ctx context.Context, msg *consumer.Message) error {
	var event models.PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.metrics.IncrementMalformed()
		if h.logger != nil {
			h.logger.WarnContext(ctx, "dropping undecodable payment message",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err,
			)
		}
		return nil
	}
	if err := event.Validate(); err != nil {
		h.metrics.IncrementMalformed()
		if h.logger != nil {
			h.logger.WarnContext(ctx, "dropping invalid payment event",
				"payment_id", event.PaymentID,
				"error", err,
			)
		}
		return nil
	}

	if h.logger != nil {
		h.logger.InfoContext(ctx, "payment received",
			"payment_id", event.PaymentID,
			"transaction_id", event.TransactionID,
			"status", models.StatusReceived,
		)
	}

	h.orchestrator.Process(ctx, event)
	return nil
}
