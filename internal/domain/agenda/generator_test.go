package agenda_test

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// 2026-10-18 es domingo.
var knownSunday = time.Date(2026, time.October, 18, 14, 37, 0, 0, time.UTC)

func mustClock(t *testing.T, s string) entity.ClockTime {
	t.Helper()
	c, err := entity.ParseClock(s)
	require.NoError(t, err)
	return c
}

func mondaysTemplate(t *testing.T) agenda.Template {
	return agenda.Template{
		Start:           mustClock(t, "09:00"),
		End:             mustClock(t, "18:00"),
		IntervalMinutes: 20,
		Weekdays:        []time.Weekday{time.Monday},
	}
}

func TestGenerateSlots_SoloLunes27PorDia(t *testing.T) {
	slots := agenda.GenerateSlots(mondaysTemplate(t), agenda.DefaultLookaheadDays, knownSunday)

	perDay := map[string][]string{}
	for _, s := range slots {
		assert.Equal(t, time.Monday, s.Date.Weekday())
		assert.Equal(t, entity.SlotFree, s.Status)
		assert.Equal(t, 20, s.DurationMinutes)
		day := s.Date.Format(time.DateOnly)
		perDay[day] = append(perDay[day], s.Time.String())
	}

	require.Len(t, perDay, 2, "la ventana de 15 días desde un domingo incluye dos lunes")
	for _, day := range []string{"2026-10-19", "2026-10-26"} {
		times := perDay[day]
		require.Len(t, times, 27, "día %s", day)
		assert.Equal(t, "09:00", times[0])
		assert.Equal(t, "17:40", times[26])
		assert.NotContains(t, times, "18:00")
	}
	assert.Len(t, slots, 54)
}

func TestGenerateSlots_OrdenDiaYHora(t *testing.T) {
	tpl := mondaysTemplate(t)
	tpl.Weekdays = []time.Weekday{time.Wednesday, time.Monday}
	slots := agenda.GenerateSlots(tpl, 7, knownSunday)

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Date.Equal(cur.Date) {
			assert.Less(t, int(prev.Time), int(cur.Time))
		} else {
			assert.True(t, prev.Date.Before(cur.Date))
		}
	}
}

func TestGenerateSlots_Determinista(t *testing.T) {
	tpl := mondaysTemplate(t)
	a, err := json.Marshal(agenda.GenerateSlots(tpl, 15, knownSunday))
	require.NoError(t, err)
	b, err := json.Marshal(agenda.GenerateSlots(tpl, 15, knownSunday))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateSlots_NoEmiteTramoParcialPeroSiUltimoInicio(t *testing.T) {
	tpl := agenda.Template{
		Start:           mustClock(t, "09:00"),
		End:             mustClock(t, "10:00"),
		IntervalMinutes: 25,
		Weekdays:        []time.Weekday{time.Sunday},
	}
	slots := agenda.GenerateSlots(tpl, 1, knownSunday)

	var times []string
	for _, s := range slots {
		times = append(times, s.Time.String())
	}
	// 09:50 empieza antes de 10:00 aunque termine después.
	assert.Equal(t, []string{"09:00", "09:25", "09:50"}, times)
}

func TestGenerateSlots_SinDiasSeleccionados(t *testing.T) {
	tpl := mondaysTemplate(t)
	tpl.Weekdays = nil
	slots := agenda.GenerateSlots(tpl, 15, knownSunday)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlots_FechaEnZonaLocal(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	// 22:30 del domingo en São Paulo ya es lunes en UTC; el día generado debe ser el domingo local.
	today := time.Date(2026, time.October, 18, 22, 30, 0, 0, loc)
	tpl := mondaysTemplate(t)
	tpl.Weekdays = []time.Weekday{time.Sunday}

	slots := agenda.GenerateSlots(tpl, 1, today)
	require.NotEmpty(t, slots)
	assert.Equal(t, "2026-10-18", slots[0].Date.Format(time.DateOnly))
	assert.Equal(t, loc, slots[0].Date.Location())
}

func TestTemplate_Validate(t *testing.T) {
	tpl := mondaysTemplate(t)
	require.NoError(t, tpl.Validate())

	bad := tpl
	bad.IntervalMinutes = 0
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = tpl
	bad.End = bad.Start
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = tpl
	bad.Weekdays = []time.Weekday{7}
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)
}

func TestWindow_Contains(t *testing.T) {
	w := agenda.NewWindow(knownSunday, 15)
	assert.True(t, w.Contains(knownSunday))
	assert.True(t, w.Contains(time.Date(2026, time.November, 1, 23, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, time.November, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)))
}

func TestParseClock(t *testing.T) {
	c, err := entity.ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, entity.ClockTime(425), c)
	assert.Equal(t, "07:05", c.String())

	c, err = entity.ParseClock("18:30:00")
	require.NoError(t, err)
	assert.Equal(t, "18:30", c.String())

	for _, in := range []string{"", "9", "25:00", "10:60", "aa:bb"} {
		_, err := entity.ParseClock(in)
		assert.Error(t, err, "entrada %q", in)
	}
}
