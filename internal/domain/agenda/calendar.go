package agenda

import (
	"time"

	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// Títulos y colores de los eventos mostrados en el calendario.
const (
	TitleFree     = "Disponível"
	TitleOccupied = "Ocupado"
	ColorFree     = "#22c55e"
	ColorOccupied = "#ef4444"

	// FallbackDisplayMinutes duración usada cuando el horario no registra su intervalo.
	FallbackDisplayMinutes = 30
)

// CalendarEvent bloque listo para la vista de calendario.
type CalendarEvent struct {
	ID     string
	Title  string
	Start  time.Time
	End    time.Time
	Status entity.SlotStatus
	Color  string
}

// ProjectionOptions parámetros de proyección.
//
// DisplayDuration > 0 fija la duración de todos los bloques (p. ej. 30 min).
// Con 0 cada bloque dura el intervalo con que se generó su horario.
type ProjectionOptions struct {
	DisplayDuration time.Duration
	Location        *time.Location
}

// ProjectEvents convierte horarios en eventos. Es pura; una lista vacía produce una lista vacía.
func ProjectEvents(slots []entity.TimeSlot, opts ProjectionOptions) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(slots))
	for _, s := range slots {
		start := s.Start(opts.Location)
		ev := CalendarEvent{
			ID:     s.ID,
			Start:  start,
			End:    start.Add(displayDuration(s, opts)),
			Status: s.Status,
		}
		if s.Status == entity.SlotFree {
			ev.Title, ev.Color = TitleFree, ColorFree
		} else {
			ev.Title, ev.Color = TitleOccupied, ColorOccupied
		}
		events = append(events, ev)
	}
	return events
}

// DisplayMismatch indica si la duración fija difiere del intervalo de generación del horario,
// caso en que los bloques del calendario se solapan o dejan huecos.
func DisplayMismatch(s entity.TimeSlot, opts ProjectionOptions) bool {
	return opts.DisplayDuration > 0 && s.DurationMinutes > 0 &&
		opts.DisplayDuration != time.Duration(s.DurationMinutes)*time.Minute
}

func displayDuration(s entity.TimeSlot, opts ProjectionOptions) time.Duration {
	if opts.DisplayDuration > 0 {
		return opts.DisplayDuration
	}
	if s.DurationMinutes > 0 {
		return time.Duration(s.DurationMinutes) * time.Minute
	}
	return FallbackDisplayMinutes * time.Minute
}
