package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/application/ports"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// LeadUseCase lectura, alta y cambio de etapa de leads.
type LeadUseCase struct {
	repo    repository.LeadRepository
	events  ports.EventPublisher
	metrics ports.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewLeadUseCase construye el caso de uso. events y metrics pueden ser nil.
func NewLeadUseCase(repo repository.LeadRepository, events ports.EventPublisher, metrics ports.Metrics, log *logger.Logger) *LeadUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LeadUseCase{repo: repo, events: events, metrics: metrics, log: log, now: time.Now}
}

// List devuelve todos los leads, más recientes primero.
func (uc *LeadUseCase) List(ctx context.Context) (*dto.LeadListResponse, error) {
	leads, err := uc.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, LeadToResponse(*l))
	}
	return &dto.LeadListResponse{Leads: out}, nil
}

// Upsert crea o reemplaza un lead. Sin id se genera uno; created_at se conserva si el lead existía.
func (uc *LeadUseCase) Upsert(ctx context.Context, in dto.UpsertLeadRequest) (*dto.LeadResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	now := uc.now()
	lead := &entity.Lead{
		ID:          strings.TrimSpace(in.ID),
		Name:        name,
		Company:     strings.TrimSpace(in.Company),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Stage:       in.Stage,
		TicketValue: in.TicketValue,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	} else {
		prev, err := uc.repo.GetByID(ctx, lead.ID)
		switch {
		case err == nil:
			lead.CreatedAt = prev.CreatedAt
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}
	if err := uc.repo.Upsert(ctx, lead); err != nil {
		return nil, err
	}
	resp := LeadToResponse(*lead)
	return &resp, nil
}

// UpdateStage escribe la etapa normalizada y publica lead.stage_changed.
// Devuelve domain.ErrNotFound si el lead no existe.
func (uc *LeadUseCase) UpdateStage(ctx context.Context, id, rawStage string) (*dto.LeadResponse, error) {
	lead, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	target := pipeline.Normalize(rawStage)
	if err := uc.repo.UpdateStage(ctx, id, target); err != nil {
		return nil, err
	}
	from := lead.Stage
	updated := lead.WithStage(target)
	updated.UpdatedAt = uc.now()

	uc.metrics.StageChanged(target.String())
	if uc.events != nil && from != target {
		ev := ports.StageChangedEvent{LeadID: id, From: from, To: target, ChangedAt: updated.UpdatedAt}
		if err := uc.events.PublishStageChanged(ctx, ev); err != nil {
			uc.log.Warn().Err(err).Str("lead_id", id).Msg("no se pudo publicar lead.stage_changed")
		}
	}
	resp := LeadToResponse(updated)
	return &resp, nil
}

// Delete elimina un lead.
func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	return uc.repo.Delete(ctx, id)
}

// LeadToResponse mapea la entidad al DTO de salida.
func LeadToResponse(l entity.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:          l.ID,
		Name:        l.Name,
		Company:     l.Company,
		Email:       l.Email,
		Phone:       l.Phone,
		Stage:       l.Stage,
		TicketValue: l.TicketValue,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// LeadFromResponse reconstruye la entidad a partir del DTO (lado cliente).
func LeadFromResponse(r dto.LeadResponse) entity.Lead {
	return entity.Lead{
		ID:          r.ID,
		Name:        r.Name,
		Company:     r.Company,
		Email:       r.Email,
		Phone:       r.Phone,
		Stage:       r.Stage,
		TicketValue: r.TicketValue,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
