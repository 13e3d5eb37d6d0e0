package usecase_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/application/ports"
	"github.com/jhoicas/flowboard-api/internal/application/usecase"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

type memLeads struct {
	rows   map[string]entity.Lead
	getErr error
}

func newMemLeads(leads ...entity.Lead) *memLeads {
	m := &memLeads{rows: map[string]entity.Lead{}}
	for _, l := range leads {
		m.rows[l.ID] = l
	}
	return m
}

func (m *memLeads) ListNewestFirst(context.Context) ([]*entity.Lead, error) {
	out := make([]*entity.Lead, 0, len(m.rows))
	for _, l := range m.rows {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memLeads) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	l, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (m *memLeads) Upsert(_ context.Context, l *entity.Lead) error {
	m.rows[l.ID] = *l
	return nil
}

func (m *memLeads) UpdateStage(_ context.Context, id string, s pipeline.Stage) error {
	l, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.rows[id] = l.WithStage(s)
	return nil
}

func (m *memLeads) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memPublisher struct {
	events []ports.StageChangedEvent
	err    error
}

func (p *memPublisher) PublishStageChanged(_ context.Context, ev ports.StageChangedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func TestLeadUseCase_UpsertGeneraIdYNormaliza(t *testing.T) {
	repo := newMemLeads()
	uc := usecase.NewLeadUseCase(repo, nil, nil, nil)

	out, err := uc.Upsert(context.Background(), dto.UpsertLeadRequest{
		Name:        "  Padaria Central ",
		Stage:       pipeline.Normalize("fechado"),
		TicketValue: decimal.NewNullDecimal(decimal.RequireFromString("1200.50")),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Padaria Central", out.Name)
	assert.Equal(t, pipeline.StageFechado, out.Stage)
	assert.False(t, out.CreatedAt.IsZero())
	assert.Contains(t, repo.rows, out.ID)
}

func TestLeadUseCase_UpsertConservaCreatedAt(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := newMemLeads(entity.Lead{ID: "L1", Name: "A", CreatedAt: created})
	uc := usecase.NewLeadUseCase(repo, nil, nil, nil)

	out, err := uc.Upsert(context.Background(), dto.UpsertLeadRequest{ID: "L1", Name: "B"})
	require.NoError(t, err)
	assert.Equal(t, created, out.CreatedAt)
	assert.Equal(t, "B", repo.rows["L1"].Name)
}

func TestLeadUseCase_UpsertConIdNuevoLoCrea(t *testing.T) {
	repo := newMemLeads()
	out, err := usecase.NewLeadUseCase(repo, nil, nil, nil).
		Upsert(context.Background(), dto.UpsertLeadRequest{ID: "L9", Name: "Nuevo"})
	require.NoError(t, err)
	assert.Equal(t, "L9", out.ID)
	assert.Contains(t, repo.rows, "L9")
}

func TestLeadUseCase_UpsertErrorDeLecturaNoSeIgnora(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := newMemLeads(entity.Lead{ID: "L1", Name: "A", CreatedAt: created})
	repo.getErr = errors.New("conn reset")

	_, err := usecase.NewLeadUseCase(repo, nil, nil, nil).
		Upsert(context.Background(), dto.UpsertLeadRequest{ID: "L1", Name: "B"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "A", repo.rows["L1"].Name, "no se escribe con created_at inventado")
}

func TestLeadUseCase_UpsertSinNombre(t *testing.T) {
	_, err := usecase.NewLeadUseCase(newMemLeads(), nil, nil, nil).
		Upsert(context.Background(), dto.UpsertLeadRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLeadUseCase_UpdateStagePublicaEvento(t *testing.T) {
	repo := newMemLeads(entity.Lead{ID: "L1", Name: "A", Stage: pipeline.StageNovo})
	pub := &memPublisher{err: errors.New("broker caído")}
	uc := usecase.NewLeadUseCase(repo, pub, nil, nil)

	out, err := uc.UpdateStage(context.Background(), "L1", " Proposta")
	require.NoError(t, err, "un fallo del broker no revierte la escritura")
	assert.Equal(t, pipeline.StageProposta, out.Stage)
	assert.Equal(t, pipeline.StageProposta, repo.rows["L1"].Stage)

	require.Len(t, pub.events, 1)
	assert.Equal(t, pipeline.StageNovo, pub.events[0].From)
	assert.Equal(t, pipeline.StageProposta, pub.events[0].To)

	// Misma etapa: se escribe pero no se publica.
	_, err = uc.UpdateStage(context.Background(), "L1", "PROPOSTA")
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
}

func TestLeadUseCase_UpdateStageLeadInexistente(t *testing.T) {
	_, err := usecase.NewLeadUseCase(newMemLeads(), nil, nil, nil).
		UpdateStage(context.Background(), "nope", "FECHADO")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadUseCase_ListMasRecientesPrimero(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := newMemLeads(
		entity.Lead{ID: "old", Name: "o", CreatedAt: base},
		entity.Lead{ID: "new", Name: "n", CreatedAt: base.Add(time.Hour)},
	)
	out, err := usecase.NewLeadUseCase(repo, nil, nil, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Leads, 2)
	assert.Equal(t, "new", out.Leads[0].ID)
}

func TestLeadUseCase_Delete(t *testing.T) {
	repo := newMemLeads(entity.Lead{ID: "L1", Name: "A"})
	uc := usecase.NewLeadUseCase(repo, nil, nil, nil)
	require.NoError(t, uc.Delete(context.Background(), "L1"))
	assert.ErrorIs(t, uc.Delete(context.Background(), "L1"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}
