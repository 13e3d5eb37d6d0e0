package agenda

import (
	"fmt"
	"time"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// TemplateFromRequest convierte el cuerpo HTTP en una plantilla validada.
func TemplateFromRequest(in dto.GenerateSlotsRequest) (agenda.Template, error) {
	start, err := entity.ParseClock(in.StartTime)
	if err != nil {
		return agenda.Template{}, fmt.Errorf("%w: start_time: %v", domain.ErrInvalidInput, err)
	}
	end, err := entity.ParseClock(in.EndTime)
	if err != nil {
		return agenda.Template{}, fmt.Errorf("%w: end_time: %v", domain.ErrInvalidInput, err)
	}
	if len(in.Weekdays) == 0 {
		return agenda.Template{}, fmt.Errorf("%w: weekdays no puede estar vacío", domain.ErrInvalidInput)
	}
	days := make([]time.Weekday, 0, len(in.Weekdays))
	for _, d := range in.Weekdays {
		days = append(days, time.Weekday(d))
	}
	tpl := agenda.Template{Start: start, End: end, IntervalMinutes: in.IntervalMinutes, Weekdays: days}
	if err := tpl.Validate(); err != nil {
		return agenda.Template{}, err
	}
	if in.LookaheadDays < 0 {
		return agenda.Template{}, fmt.Errorf("%w: lookahead_days no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.LookaheadDays > agenda.MaxLookaheadDays {
		return agenda.Template{}, fmt.Errorf("%w: lookahead_days no puede superar %d", domain.ErrInvalidInput, agenda.MaxLookaheadDays)
	}
	return tpl, nil
}
