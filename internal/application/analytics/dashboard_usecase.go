// Package analytics contiene los casos de uso de solo lectura para las tarjetas del panel.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del funil.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos llamadas en paralelo:
//  1. TotalsByStage  → conteos y valores por etapa
//  2. CountCompanies → total de empresas
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type totalsResult struct {
		rows []repository.StageTotals
		err  error
	}
	type countResult struct {
		n   int
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	companiesCh := make(chan countResult, 1)

	go func() {
		rows, err := uc.repo.TotalsByStage(ctx)
		totalsCh <- totalsResult{rows, err}
	}()
	go func() {
		n, err := uc.repo.CountCompanies(ctx)
		companiesCh <- countResult{n, err}
	}()

	totals := <-totalsCh
	companies := <-companiesCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales por etapa: %w", totals.err)
	}
	if companies.err != nil {
		return nil, fmt.Errorf("dashboard: empresas: %w", companies.err)
	}

	byStage := make(map[pipeline.Stage]repository.StageTotals, len(totals.rows))
	for _, r := range totals.rows {
		prev := byStage[r.Stage]
		prev.Stage = r.Stage
		prev.Count += r.Count
		prev.TicketTotal = prev.TicketTotal.Add(r.TicketTotal)
		byStage[r.Stage] = prev
	}

	out := &dto.DashboardSummaryDTO{
		TotalCompanies:    companies.n,
		ByStage:           make([]dto.StageCountDTO, 0, len(pipeline.Stages())),
		OpenPipelineValue: decimal.Zero,
		WonValue:          decimal.Zero,
		ConversionRate:    decimal.Zero,
	}
	for _, st := range pipeline.Stages() {
		t := byStage[st]
		out.TotalLeads += t.Count
		out.ByStage = append(out.ByStage, dto.StageCountDTO{
			Stage:       st.String(),
			Count:       t.Count,
			TicketTotal: t.TicketTotal.Round(2),
		})
		if st.IsOpen() {
			out.OpenPipelineValue = out.OpenPipelineValue.Add(t.TicketTotal)
		}
	}
	won := byStage[pipeline.StageFechado]
	lost := byStage[pipeline.StageRecusado]
	out.WonValue = won.TicketTotal.Round(2)
	out.OpenPipelineValue = out.OpenPipelineValue.Round(2)
	if closed := won.Count + lost.Count; closed > 0 {
		out.ConversionRate = decimal.NewFromInt(int64(won.Count)).
			Div(decimal.NewFromInt(int64(closed))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return out, nil
}
