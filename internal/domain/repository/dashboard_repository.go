package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

// StageTotals conteo y suma de ticket de los leads de una etapa.
type StageTotals struct {
	Stage       pipeline.Stage
	Count       int
	TicketTotal decimal.Decimal
}

// DashboardRepository consultas de solo lectura para las tarjetas del panel.
type DashboardRepository interface {
	TotalsByStage(ctx context.Context) ([]StageTotals, error)
	CountCompanies(ctx context.Context) (int, error)
}
