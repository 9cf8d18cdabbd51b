package service

import (
	"time"

	"homehero/internal/domain"
	"homehero/internal/events"

	"github.com/rs/zerolog"
)

func publishEvent(bus domain.EventPublisher, logger *zerolog.Logger, eventType string, payload events.DocumentEventPayload) {
	if bus == nil {
		return
	}
	if payload.At.IsZero() {
		payload.At = time.Now()
	}
	if err := bus.PublishJSON(eventType, payload); err != nil && logger != nil {
		logger.Error().Err(err).Str("event_type", eventType).Str("collection", payload.Collection).Msg("publish event error")
	}
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	return names
}

func nopIfNil(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	l := zerolog.Nop()
	return &l
}
