// Package agenda expande una plantilla semanal de disponibilidad en horarios concretos
// y proyecta esos horarios como eventos de calendario.
package agenda

import (
	"fmt"
	"time"

	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// DefaultLookaheadDays días hacia adelante que cubre una generación.
const DefaultLookaheadDays = 15

// MaxLookaheadDays tope de días por generación; acota el lote que se inserta de una vez.
const MaxLookaheadDays = 366

// Template regla semanal: horario de trabajo, intervalo y días activos (0=domingo..6=sábado).
// Solo parametriza una ejecución; no se persiste.
type Template struct {
	Start           entity.ClockTime
	End             entity.ClockTime
	IntervalMinutes int
	Weekdays        []time.Weekday
}

// Validate exige intervalo positivo, días 0..6 y Start < End.
func (t Template) Validate() error {
	if t.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval_minutes debe ser positivo", domain.ErrInvalidInput)
	}
	if t.Start >= t.End {
		return fmt.Errorf("%w: start_time debe ser anterior a end_time", domain.ErrInvalidInput)
	}
	for _, d := range t.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: día de la semana %d fuera de rango", domain.ErrInvalidInput, d)
		}
	}
	return nil
}

func (t Template) selects(d time.Weekday) bool {
	for _, w := range t.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// Window intervalo semiabierto [from, to) de días cubierto por una generación.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow calcula la ventana que empieza a la medianoche de today.
func NewWindow(today time.Time, lookaheadDays int) Window {
	from := startOfDay(today)
	return Window{From: from, To: from.AddDate(0, 0, lookaheadDays)}
}

// Contains indica si el día cae dentro de la ventana.
func (w Window) Contains(day time.Time) bool {
	d := startOfDay(day)
	return !d.Before(w.From) && d.Before(w.To)
}

// GenerateSlots expande la plantilla sobre los días [today, today+lookaheadDays).
//
// Para cada día cuyo weekday está en la plantilla emite un horario libre cada
// IntervalMinutes desde Start mientras el cursor sea estrictamente menor que End.
// Solo se compara el instante de inicio: el último horario puede terminar después de End.
// El resultado queda ordenado por día y luego por hora, y es determinista (sin IDs).
func GenerateSlots(tpl Template, lookaheadDays int, today time.Time) []entity.TimeSlot {
	if tpl.IntervalMinutes <= 0 || lookaheadDays <= 0 {
		return []entity.TimeSlot{}
	}
	base := startOfDay(today)
	out := make([]entity.TimeSlot, 0)
	for i := 0; i < lookaheadDays; i++ {
		day := base.AddDate(0, 0, i)
		if !tpl.selects(day.Weekday()) {
			continue
		}
		for cursor := tpl.Start; cursor < tpl.End; cursor += entity.ClockTime(tpl.IntervalMinutes) {
			out = append(out, entity.TimeSlot{
				Date:            day,
				Time:            cursor,
				Status:          entity.SlotFree,
				DurationMinutes: tpl.IntervalMinutes,
			})
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
