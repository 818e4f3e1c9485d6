package notify

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/mester-scheduler/internal/events"
)

// LogPublisher é o driver padrão quando nenhum broker está configurado.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

var _ events.Publisher = (*LogPublisher)(nil)

func (p *LogPublisher) Publish(ctx context.Context, ev events.Event) error {
	p.log.InfoContext(ctx, "event",
		"event_id", ev.ID.String(),
		"type", ev.Type,
		"professional_id", ev.ProfessionalID,
		"entity_id", ev.EntityID,
	)
	return nil
}
