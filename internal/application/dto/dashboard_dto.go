package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalLeads     int             `json:"total_leads"`
	TotalCompanies int             `json:"total_companies"`
	ByStage        []StageCountDTO `json:"by_stage"` // siempre las cinco etapas, en orden

	// Suma de ticket_value de los leads que no están en FECHADO ni RECUSADO.
	OpenPipelineValue decimal.Decimal `json:"open_pipeline_value"`
	WonValue          decimal.Decimal `json:"won_value"`
	// Porcentaje FECHADO / (FECHADO + RECUSADO); cero sin leads cerrados.
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// StageCountDTO fila del widget por etapa.
type StageCountDTO struct {
	Stage       string          `json:"stage"`
	Count       int             `json:"count"`
	TicketTotal decimal.Decimal `json:"ticket_total"`
}
