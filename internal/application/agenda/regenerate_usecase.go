package agenda

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/application/ports"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// ReplaceScope qué horarios previos borra una regeneración.
type ReplaceScope string

const (
	// ScopeWindow borra solo los horarios libres dentro de la ventana generada; los ocupados se
	// conservan y los horarios nuevos que coinciden con ellos se descartan.
	ScopeWindow ReplaceScope = "window"
	// ScopeAll borra todo el almacén, incluidos los ocupados, antes de insertar el lote.
	ScopeAll ReplaceScope = "all"
)

// Resultados registrados en métricas.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultBusy    = "busy"
	ResultFailed  = "failed"
)

// RegenerateOptions configuración fija del caso de uso.
type RegenerateOptions struct {
	Scope         ReplaceScope
	LookaheadDays int
	Location      *time.Location
}

// RegenerateInput una ejecución. LookaheadDays 0 usa el valor configurado.
type RegenerateInput struct {
	Template      agenda.Template
	LookaheadDays int
}

// RegenerateUseCase expande la plantilla y reemplaza los horarios en una sola transacción.
// Solo una regeneración corre a la vez; una segunda llamada concurrente recibe
// domain.ErrRegenerationInProgress.
type RegenerateUseCase struct {
	tx      SlotTxRunner
	opts    RegenerateOptions
	metrics ports.Metrics
	log     *logger.Logger

	running atomic.Bool
	now     func() time.Time
	newID   func() string
}

// NewRegenerateUseCase construye el caso de uso.
func NewRegenerateUseCase(tx SlotTxRunner, opts RegenerateOptions, metrics ports.Metrics, log *logger.Logger) *RegenerateUseCase {
	if opts.Scope == "" {
		opts.Scope = ScopeWindow
	}
	if opts.LookaheadDays <= 0 {
		opts.LookaheadDays = agenda.DefaultLookaheadDays
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegenerateUseCase{
		tx:      tx,
		opts:    opts,
		metrics: metrics,
		log:     log.Component("agenda"),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj; los tests fijan "hoy".
func (uc *RegenerateUseCase) WithClock(now func() time.Time) *RegenerateUseCase {
	uc.now = now
	return uc
}

// Regenerate ejecuta una regeneración completa.
func (uc *RegenerateUseCase) Regenerate(ctx context.Context, in RegenerateInput) (*dto.RegenerationReport, error) {
	if err := in.Template.Validate(); err != nil {
		uc.metrics.RegenerationFinished(ResultInvalid, 0)
		return nil, err
	}
	if in.LookaheadDays > agenda.MaxLookaheadDays {
		uc.metrics.RegenerationFinished(ResultInvalid, 0)
		return nil, fmt.Errorf("%w: lookahead_days no puede superar %d", domain.ErrInvalidInput, agenda.MaxLookaheadDays)
	}
	if !uc.running.CompareAndSwap(false, true) {
		uc.metrics.RegenerationFinished(ResultBusy, 0)
		uc.log.Warn().Msg("regeneración rechazada: ya hay una en curso")
		return nil, domain.ErrRegenerationInProgress
	}
	defer uc.running.Store(false)

	started := uc.now()
	days := in.LookaheadDays
	if days <= 0 {
		days = uc.opts.LookaheadDays
	}
	today := started.In(uc.opts.Location)
	window := agenda.NewWindow(today, days)

	generated := agenda.GenerateSlots(in.Template, days, today)
	for i := range generated {
		generated[i].ID = uc.newID()
		generated[i].CreatedAt = started.UTC()
	}

	report := &dto.RegenerationReport{
		Scope:      string(uc.opts.Scope),
		WindowFrom: window.From.Format(time.DateOnly),
		WindowTo:   window.To.Format(time.DateOnly),
		Generated:  len(generated),
	}

	err := uc.tx.RunSlots(ctx, func(repo repository.SlotRepository) error {
		batch, err := uc.prepare(ctx, repo, window, generated, report)
		if err != nil {
			return err
		}
		n, err := repo.InsertBatch(ctx, batch)
		if err != nil {
			return err
		}
		report.Inserted = n
		return nil
	})
	if err != nil {
		uc.metrics.RegenerationFinished(ResultFailed, 0)
		uc.log.Error().Err(err).
			Str("scope", report.Scope).
			Int("generated", report.Generated).
			Msg("regeneración de horarios falló; transacción revertida, se conservan los horarios anteriores")
		return nil, fmt.Errorf("%w: %v", domain.ErrRegenerationFailed, err)
	}

	finished := uc.now()
	report.FinishedAt = finished.UTC()
	report.DurationMilli = finished.Sub(started).Milliseconds()
	uc.metrics.RegenerationFinished(ResultOK, int(report.Inserted))
	uc.log.Info().
		Str("scope", report.Scope).
		Int64("deleted", report.Deleted).
		Int64("inserted", report.Inserted).
		Int("kept_occupied", report.KeptOccupied).
		Msg("horarios regenerados")
	return report, nil
}

// prepare aplica el borrado según el scope y devuelve el lote a insertar.
func (uc *RegenerateUseCase) prepare(
	ctx context.Context,
	repo repository.SlotRepository,
	window agenda.Window,
	generated []entity.TimeSlot,
	report *dto.RegenerationReport,
) ([]entity.TimeSlot, error) {
	if uc.opts.Scope == ScopeAll {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return nil, err
		}
		report.Deleted = n
		return generated, nil
	}

	occupied, err := repo.ListOccupiedBetween(ctx, window.From, window.To)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s.Key()] = struct{}{}
	}
	report.KeptOccupied = len(occupied)

	n, err := repo.DeleteFreeBetween(ctx, window.From, window.To)
	if err != nil {
		return nil, err
	}
	report.Deleted = n

	batch := make([]entity.TimeSlot, 0, len(generated))
	for _, s := range generated {
		if _, ok := taken[s.Key()]; ok {
			report.SkippedTaken++
			continue
		}
		batch = append(batch, s)
	}
	return batch, nil
}
