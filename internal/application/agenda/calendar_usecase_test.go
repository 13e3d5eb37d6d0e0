package agenda_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appagenda "github.com/jhoicas/flowboard-api/internal/application/agenda"
	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

func dtoRequest(start, end string, interval int, weekdays ...int) dto.GenerateSlotsRequest {
	return dto.GenerateSlotsRequest{StartTime: start, EndTime: end, IntervalMinutes: interval, Weekdays: weekdays}
}

type fakePDF struct {
	got []entity.TimeSlot
}

func (f *fakePDF) GenerateAgendaPDF(_ context.Context, _ string, slots []entity.TimeSlot, _ agenda.Window) ([]byte, error) {
	f.got = slots
	return []byte("%PDF-fake"), nil
}

func TestCalendar_EventsAvisaDuracionDistinta(t *testing.T) {
	tx := &memTx{rows: []entity.TimeSlot{
		slot("2026-10-19", "09:20", entity.SlotFree),
		slot("2026-10-19", "09:00", entity.SlotOccupied),
	}}
	tx.rows[0].DurationMinutes = 20
	tx.rows[1].DurationMinutes = 20

	var buf bytes.Buffer
	uc := appagenda.NewCalendarUseCase(tx, nil, agenda.ProjectionOptions{
		DisplayDuration: 30 * time.Minute, Location: time.UTC,
	}, 15, logger.FromZerolog(zerolog.New(&buf)))

	out, err := uc.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Events, 2)
	assert.Equal(t, "Ocupado", out.Events[0].Title, "ordenado por hora")
	assert.Equal(t, 30*time.Minute, out.Events[1].End.Sub(out.Events[1].Start))
	assert.Contains(t, buf.String(), "duración de visualización distinta")
}

func TestCalendar_SlotsVacio(t *testing.T) {
	uc := appagenda.NewCalendarUseCase(&memTx{}, nil, agenda.ProjectionOptions{}, 15, nil)
	out, err := uc.Slots(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.Slots)
	assert.Empty(t, out.Slots)

	events, err := uc.Events(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events.Events)
}

func TestCalendar_PDFSoloVentanaActual(t *testing.T) {
	pdf := &fakePDF{}
	tx := &memTx{rows: []entity.TimeSlot{
		slot("2026-10-19", "09:00", entity.SlotFree),
		slot("2026-12-01", "09:00", entity.SlotFree),
	}}
	uc := appagenda.NewCalendarUseCase(tx, pdf, agenda.ProjectionOptions{Location: time.UTC}, 15, nil).
		WithClock(func() time.Time { return sunday })

	b, err := uc.PDF(context.Background(), "Agenda")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), b)
	require.Len(t, pdf.got, 1)
	assert.Equal(t, "2026-10-19 09:00", pdf.got[0].Key())
}
