package ports

import (
	"context"
	"time"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

// StageChangedEvent se emite cada vez que un lead cambia de etapa.
type StageChangedEvent struct {
	LeadID    string         `json:"lead_id"`
	From      pipeline.Stage `json:"from"`
	To        pipeline.Stage `json:"to"`
	ChangedAt time.Time      `json:"changed_at"`
}

// EventPublisher puerto de salida para eventos del funil (RabbitMQ o no-op).
// La publicación es best effort: un error se registra y no revierte la escritura.
type EventPublisher interface {
	PublishStageChanged(ctx context.Context, ev StageChangedEvent) error
}
