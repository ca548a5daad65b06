// Package events consumes clinic-side queue updates from Kafka.
package events

import (
	"context"

	"medq/internal/queue/service"
	apperrors "medq/pkg/errors"
	"medq/pkg/kafka"
	"medq/pkg/logger"
)

const EventQueueAdvanced = "queue.advanced"

type QueueAdvancedEvent struct {
	DoctorID   string `json:"doctor_id"`
	Date       string `json:"date"`
	NowServing int    `json:"now_serving"`
}

// NewQueueAdvancedHandler applies queue.advanced events. Redelivered or
// out-of-order events that would move the pointer backwards are acknowledged
// and dropped.
func NewQueueAdvancedHandler(svc service.QueueService, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		if t := msg.GetEventType(); t != "" && t != EventQueueAdvanced {
			log.Debug("Ignoring unrelated event", "event_type", t, "event_id", msg.GetEventID())
			return nil
		}

		var event QueueAdvancedEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}

		_, err := svc.Advance(ctx, event.DoctorID, event.Date, event.NowServing)
		if err == nil {
			return nil
		}

		appErr := apperrors.AsAppError(err)
		switch appErr.Code {
		case apperrors.CodeConflict:
			log.Debug("Dropping stale queue event",
				"event_id", msg.GetEventID(),
				"doctor_id", event.DoctorID,
				"date", event.Date,
				"now_serving", event.NowServing,
			)
			return nil
		case apperrors.CodeNotFound, apperrors.CodeInvalidInput, apperrors.CodeValidation:
			return kafka.NewPermanentError("invalid queue event", err)
		default:
			return kafka.NewTransientError("failed to apply queue event", err)
		}
	}
}
