package agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// CalendarUseCase lectura del almacén de disponibilidad para el calendario.
type CalendarUseCase struct {
	slots         repository.SlotRepository
	pdf           AgendaPDFGenerator
	opts          agenda.ProjectionOptions
	lookaheadDays int
	log           *logger.Logger
	now           func() time.Time
}

// NewCalendarUseCase construye el caso de uso. pdf puede ser nil si no se sirve la impresión.
func NewCalendarUseCase(slots repository.SlotRepository, pdf AgendaPDFGenerator, opts agenda.ProjectionOptions, lookaheadDays int, log *logger.Logger) *CalendarUseCase {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if lookaheadDays <= 0 {
		lookaheadDays = agenda.DefaultLookaheadDays
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CalendarUseCase{
		slots:         slots,
		pdf:           pdf,
		opts:          opts,
		lookaheadDays: lookaheadDays,
		log:           log.Component("calendar"),
		now:           time.Now,
	}
}

// Slots lista los horarios por fecha y hora.
func (uc *CalendarUseCase) Slots(ctx context.Context) (*dto.SlotListResponse, error) {
	slots, err := uc.slots.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotToResponse(s))
	}
	return &dto.SlotListResponse{Slots: out}, nil
}

// Events proyecta los horarios almacenados como eventos de calendario.
func (uc *CalendarUseCase) Events(ctx context.Context) (*dto.CalendarEventListResponse, error) {
	slots, err := uc.slots.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	uc.warnMismatch(slots)

	events := agenda.ProjectEvents(slots, uc.opts)
	out := make([]dto.CalendarEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.CalendarEventResponse{
			ID:     ev.ID,
			Title:  ev.Title,
			Start:  ev.Start,
			End:    ev.End,
			Status: string(ev.Status),
			Color:  ev.Color,
		})
	}
	return &dto.CalendarEventListResponse{Events: out}, nil
}

// PDF imprime los horarios de la ventana actual.
func (uc *CalendarUseCase) PDF(ctx context.Context, title string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("%w: impresión de agenda no configurada", domain.ErrNotFound)
	}
	window := agenda.NewWindow(uc.now().In(uc.opts.Location), uc.lookaheadDays)
	slots, err := uc.slots.ListBetween(ctx, window.From, window.To)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateAgendaPDF(ctx, title, slots, window)
}

// warnMismatch marca en el log cuando la duración fija de visualización no coincide con el
// intervalo de generación: los bloques del calendario se solapan o dejan huecos.
func (uc *CalendarUseCase) warnMismatch(slots []entity.TimeSlot) {
	n := 0
	for _, s := range slots {
		if agenda.DisplayMismatch(s, uc.opts) {
			n++
		}
	}
	if n > 0 {
		uc.log.Warn().
			Int("slots", n).
			Dur("display_duration", uc.opts.DisplayDuration).
			Msg("duración de visualización distinta del intervalo de generación")
	}
}

// SlotToResponse mapea un horario al DTO.
func SlotToResponse(s entity.TimeSlot) dto.SlotResponse {
	return dto.SlotResponse{
		ID:              s.ID,
		Date:            s.Date.Format(time.DateOnly),
		Time:            s.Time.String(),
		Status:          string(s.Status),
		DurationMinutes: s.DurationMinutes,
	}
}

// WithClock reemplaza el reloj usado para calcular la ventana impresa.
func (uc *CalendarUseCase) WithClock(now func() time.Time) *CalendarUseCase {
	uc.now = now
	return uc
}
