package events

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/internal/application/service"
	"github.com/khoahotran/apex-portal/pkg/logger"
)

var tracer = otel.Tracer("events_usecase")

type RecordProfileEventUseCase struct {
	store  service.ProfileEventStore
	logger logger.Logger
}

func NewRecordProfileEventUseCase(store service.ProfileEventStore, log logger.Logger) *RecordProfileEventUseCase {
	return &RecordProfileEventUseCase{store: store, logger: log}
}

// Execute appends one consumed event to the audit trail. Unknown event types are
// still recorded so newer producers do not stall the worker.
func (uc *RecordProfileEventUseCase) Execute(ctx context.Context, evt service.ProfileEvent) error {
	ctx, span := tracer.Start(ctx, "RecordProfileEvent",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("event_type", string(evt.EventType)),
			attribute.String("user_id", evt.UserID.String()),
		),
	)
	defer span.End()

	switch evt.EventType {
	case service.ProfileEventCompanyLinked, service.ProfileEventLinkingSkipped, service.ProfileEventPrefsSaved:
	default:
		uc.logger.Warn("Recording unknown profile event type", zap.String("event_type", string(evt.EventType)))
	}

	if err := uc.store.Append(ctx, evt); err != nil {
		span.RecordError(err)
		return fmt.Errorf("record profile event %s: %w", evt.EventID, err)
	}

	uc.logger.Info("Recorded profile event",
		zap.String("event_id", evt.EventID.String()),
		zap.String("event_type", string(evt.EventType)),
		zap.String("user_id", evt.UserID.String()),
	)
	return nil
}
