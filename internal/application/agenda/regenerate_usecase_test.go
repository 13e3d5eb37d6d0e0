package agenda_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appagenda "github.com/jhoicas/flowboard-api/internal/application/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

// memSlots almacén en memoria; RunSlots trabaja sobre una copia y solo la publica si fn no falla.
type memSlots struct {
	mu        sync.Mutex
	rows      []entity.TimeSlot
	failCopy  error
	insideRun chan struct{}
	release   chan struct{}
}

type memTx struct {
	store *memSlots
	rows  []entity.TimeSlot
}

func (m *memSlots) RunSlots(ctx context.Context, fn func(repository.SlotRepository) error) error {
	if m.insideRun != nil {
		m.insideRun <- struct{}{}
		<-m.release
	}
	m.mu.Lock()
	tx := &memTx{store: m, rows: append([]entity.TimeSlot(nil), m.rows...)}
	m.mu.Unlock()
	if err := fn(tx); err != nil {
		return err
	}
	m.mu.Lock()
	m.rows = tx.rows
	m.mu.Unlock()
	return nil
}

func (m *memSlots) snapshot() []entity.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.TimeSlot(nil), m.rows...)
}

func inRange(s entity.TimeSlot, from, to time.Time) bool {
	d := s.Date.Format(time.DateOnly)
	return d >= from.Format(time.DateOnly) && d < to.Format(time.DateOnly)
}

func (t *memTx) ListOrdered(context.Context) ([]entity.TimeSlot, error) {
	out := append([]entity.TimeSlot(nil), t.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func (t *memTx) ListBetween(ctx context.Context, from, to time.Time) ([]entity.TimeSlot, error) {
	all, _ := t.ListOrdered(ctx)
	var out []entity.TimeSlot
	for _, s := range all {
		if inRange(s, from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *memTx) ListOccupiedBetween(_ context.Context, from, to time.Time) ([]entity.TimeSlot, error) {
	var out []entity.TimeSlot
	for _, s := range t.rows {
		if s.Status == entity.SlotOccupied && inRange(s, from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *memTx) DeleteAll(context.Context) (int64, error) {
	n := int64(len(t.rows))
	t.rows = nil
	return n, nil
}

func (t *memTx) DeleteFreeBetween(_ context.Context, from, to time.Time) (int64, error) {
	var kept []entity.TimeSlot
	var n int64
	for _, s := range t.rows {
		if s.Status == entity.SlotFree && inRange(s, from, to) {
			n++
			continue
		}
		kept = append(kept, s)
	}
	t.rows = kept
	return n, nil
}

func (t *memTx) InsertBatch(_ context.Context, slots []entity.TimeSlot) (int64, error) {
	if t.store.failCopy != nil {
		return 0, t.store.failCopy
	}
	t.rows = append(t.rows, slots...)
	return int64(len(slots)), nil
}

type recordingMetrics struct {
	mu      sync.Mutex
	results []string
}

func (r *recordingMetrics) StageChanged(string) {}
func (r *recordingMetrics) RegenerationFinished(result string, _ int) {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
}

// 2026-10-18 domingo, 10:00 en UTC.
var sunday = time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

func mondays() agenda.Template {
	return agenda.Template{Start: 9 * 60, End: 18 * 60, IntervalMinutes: 20, Weekdays: []time.Weekday{time.Monday}}
}

func slot(day, clock string, status entity.SlotStatus) entity.TimeSlot {
	d, _ := time.Parse(time.DateOnly, day)
	c, _ := entity.ParseClock(clock)
	return entity.TimeSlot{ID: "old-" + day + clock, Date: d, Time: c, Status: status, DurationMinutes: 30}
}

func newUC(store *memSlots, scope appagenda.ReplaceScope, m *recordingMetrics) *appagenda.RegenerateUseCase {
	return appagenda.NewRegenerateUseCase(store, appagenda.RegenerateOptions{
		Scope: scope, LookaheadDays: 15, Location: time.UTC,
	}, m, nil).WithClock(func() time.Time { return sunday })
}

func TestRegenerate_ScopeAllReemplazaTodoIncluidoOcupados(t *testing.T) {
	store := &memSlots{rows: []entity.TimeSlot{
		slot("2026-10-19", "09:00", entity.SlotOccupied),
		slot("2026-12-01", "10:00", entity.SlotFree),
	}}
	report, err := newUC(store, appagenda.ScopeAll, &recordingMetrics{}).
		Regenerate(context.Background(), appagenda.RegenerateInput{Template: mondays()})
	require.NoError(t, err)

	rows := store.snapshot()
	assert.Len(t, rows, 54)
	assert.Equal(t, int64(2), report.Deleted)
	assert.Equal(t, int64(54), report.Inserted)
	for _, s := range rows {
		assert.Equal(t, entity.SlotFree, s.Status, "ningún horario previo sobrevive")
		assert.NotEmpty(t, s.ID)
		assert.False(t, len(s.ID) > 4 && s.ID[:4] == "old-")
	}
}

func TestRegenerate_ScopeWindowConservaOcupadosYFueraDeVentana(t *testing.T) {
	occupied := slot("2026-10-19", "09:20", entity.SlotOccupied)
	outside := slot("2026-12-01", "10:00", entity.SlotFree)
	store := &memSlots{rows: []entity.TimeSlot{
		occupied,
		slot("2026-10-20", "15:00", entity.SlotFree),
		outside,
	}}
	report, err := newUC(store, appagenda.ScopeWindow, &recordingMetrics{}).
		Regenerate(context.Background(), appagenda.RegenerateInput{Template: mondays()})
	require.NoError(t, err)

	rows := store.snapshot()
	byKey := map[string]entity.TimeSlot{}
	for _, s := range rows {
		_, dup := byKey[s.Key()]
		assert.False(t, dup, "clave repetida %s", s.Key())
		byKey[s.Key()] = s
	}
	assert.Equal(t, occupied.ID, byKey[occupied.Key()].ID, "el ocupado no se sobrescribe")
	assert.Equal(t, entity.SlotOccupied, byKey[occupied.Key()].Status)
	assert.Contains(t, byKey, outside.Key())
	assert.NotContains(t, byKey, "2026-10-20 15:00")

	assert.Equal(t, 1, report.KeptOccupied)
	assert.Equal(t, 1, report.SkippedTaken)
	assert.Equal(t, int64(1), report.Deleted)
	assert.Equal(t, int64(53), report.Inserted)
	assert.Len(t, rows, 55)
}

func TestRegenerate_FalloDeInsercionConservaEstadoPrevio(t *testing.T) {
	prev := []entity.TimeSlot{slot("2026-10-19", "09:00", entity.SlotFree)}
	store := &memSlots{rows: prev, failCopy: errors.New("copy: connection reset")}
	m := &recordingMetrics{}

	_, err := newUC(store, appagenda.ScopeAll, m).
		Regenerate(context.Background(), appagenda.RegenerateInput{Template: mondays()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegenerationFailed)
	assert.Equal(t, domain.KindRegenerationFailed, domain.Kind(err))
	assert.Equal(t, prev, store.snapshot())
	assert.Equal(t, []string{appagenda.ResultFailed}, m.results)
}

func TestRegenerate_PlantillaInvalida(t *testing.T) {
	store := &memSlots{}
	tpl := mondays()
	tpl.IntervalMinutes = 0
	_, err := newUC(store, appagenda.ScopeWindow, &recordingMetrics{}).
		Regenerate(context.Background(), appagenda.RegenerateInput{Template: tpl})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegenerate_SegundaLlamadaConcurrenteRechazada(t *testing.T) {
	store := &memSlots{insideRun: make(chan struct{}), release: make(chan struct{})}
	m := &recordingMetrics{}
	uc := newUC(store, appagenda.ScopeWindow, m)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Regenerate(context.Background(), appagenda.RegenerateInput{Template: mondays()})
		done <- err
	}()
	<-store.insideRun

	_, err := uc.Regenerate(context.Background(), appagenda.RegenerateInput{Template: mondays()})
	assert.ErrorIs(t, err, domain.ErrRegenerationInProgress)
	assert.Equal(t, domain.KindConflict, domain.Kind(err))

	close(store.release)
	require.NoError(t, <-done)

	// Terminada la primera, se puede volver a ejecutar.
	store.insideRun = nil
	_, err = uc.Regenerate(context.Background(), appagenda.RegenerateInput{Template: mondays()})
	assert.NoError(t, err)
}

func TestTemplateFromRequest(t *testing.T) {
	tpl, err := appagenda.TemplateFromRequest(dtoRequest("09:00", "18:00", 20, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, tpl.Weekdays)

	_, err = appagenda.TemplateFromRequest(dtoRequest("9h", "18:00", 20, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appagenda.TemplateFromRequest(dtoRequest("09:00", "18:00", 20))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appagenda.TemplateFromRequest(dtoRequest("18:00", "09:00", 20, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplateFromRequest_TopeDeDias(t *testing.T) {
	req := dtoRequest("09:00", "18:00", 20, 1)
	req.LookaheadDays = agenda.MaxLookaheadDays
	_, err := appagenda.TemplateFromRequest(req)
	require.NoError(t, err)

	req.LookaheadDays = agenda.MaxLookaheadDays + 1
	_, err = appagenda.TemplateFromRequest(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegenerate_RechazaVentanaExcesivaSinTocarLaAgenda(t *testing.T) {
	prev := []entity.TimeSlot{slot("2026-10-19", "09:00", entity.SlotFree)}
	store := &memSlots{rows: prev}
	m := &recordingMetrics{}
	_, err := newUC(store, appagenda.ScopeAll, m).
		Regenerate(context.Background(), appagenda.RegenerateInput{Template: mondays(), LookaheadDays: 100000})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, prev, store.snapshot())
	assert.Equal(t, []string{appagenda.ResultInvalid}, m.results)
}
