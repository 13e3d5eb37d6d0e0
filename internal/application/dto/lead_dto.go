package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

// UpsertLeadRequest entrada de POST /api/leads. Sin id se crea un lead nuevo.
// stage se normaliza al decodificar: etiquetas desconocidas quedan en NOVO.
type UpsertLeadRequest struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Company     string              `json:"company"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Stage       pipeline.Stage      `json:"stage"`
	TicketValue decimal.NullDecimal `json:"ticket_value"`
	Notes       string              `json:"notes"`
}

// UpdateStageRequest cuerpo de PATCH /api/leads/:id/stage.
type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Company     string              `json:"company,omitempty"`
	Email       string              `json:"email,omitempty"`
	Phone       string              `json:"phone,omitempty"`
	Stage       pipeline.Stage      `json:"stage"`
	TicketValue decimal.NullDecimal `json:"ticket_value"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// LeadListResponse envoltorio {"leads": [...]}.
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
}

// LeadEnvelope envoltorio {"lead": {...}}.
type LeadEnvelope struct {
	Lead LeadResponse `json:"lead"`
}
