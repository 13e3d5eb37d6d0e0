package repository

import (
	"context"

	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

// LeadRepository define el puerto de persistencia para Lead.
// La implementación vive en infrastructure.
type LeadRepository interface {
	// ListNewestFirst devuelve todos los leads ordenados por created_at descendente.
	ListNewestFirst(ctx context.Context) ([]*entity.Lead, error)
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	Upsert(ctx context.Context, lead *entity.Lead) error
	// UpdateStage escribe la etapa completa (no un delta). Devuelve domain.ErrNotFound si no existe.
	UpdateStage(ctx context.Context, id string, stage pipeline.Stage) error
	Delete(ctx context.Context, id string) error
}
