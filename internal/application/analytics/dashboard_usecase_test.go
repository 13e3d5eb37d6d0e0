package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/internal/application/analytics"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

type fakeDashboardRepo struct {
	totals    []repository.StageTotals
	companies int
	err       error
}

func (f *fakeDashboardRepo) TotalsByStage(context.Context) ([]repository.StageTotals, error) {
	return f.totals, f.err
}

func (f *fakeDashboardRepo) CountCompanies(context.Context) (int, error) {
	return f.companies, nil
}

func TestGetSummary_ValoresPorEtapa(t *testing.T) {
	repo := &fakeDashboardRepo{
		companies: 4,
		totals: []repository.StageTotals{
			{Stage: pipeline.StageNovo, Count: 3, TicketTotal: decimal.RequireFromString("100.50")},
			{Stage: pipeline.StageProposta, Count: 1, TicketTotal: decimal.RequireFromString("900")},
			{Stage: pipeline.StageFechado, Count: 3, TicketTotal: decimal.RequireFromString("1500")},
			{Stage: pipeline.StageRecusado, Count: 1, TicketTotal: decimal.RequireFromString("50")},
		},
	}
	out, err := analytics.NewDashboardUseCase(repo).GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, out.TotalLeads)
	assert.Equal(t, 4, out.TotalCompanies)
	require.Len(t, out.ByStage, 5)
	assert.Equal(t, "NOVO", out.ByStage[0].Stage)
	assert.Equal(t, 0, out.ByStage[1].Count, "AGENDADO sin leads aparece con cero")
	assert.True(t, out.OpenPipelineValue.Equal(decimal.RequireFromString("1000.50")))
	assert.True(t, out.WonValue.Equal(decimal.NewFromInt(1500)))
	assert.True(t, out.ConversionRate.Equal(decimal.NewFromInt(75)))
}

func TestGetSummary_ErrorDelRepositorio(t *testing.T) {
	repo := &fakeDashboardRepo{err: errors.New("db caída")}
	_, err := analytics.NewDashboardUseCase(repo).GetSummary(context.Background())
	assert.Error(t, err)
}
