package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

// Lead representa un cliente potencial que avanza por el funil de ventas.
type Lead struct {
	ID          string
	Name        string
	Company     string
	Email       string
	Phone       string
	Stage       pipeline.Stage
	TicketValue decimal.NullDecimal // valor estimado del negocio; Valid=false si no se informó
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WithStage devuelve una copia del lead en otra etapa.
func (l Lead) WithStage(s pipeline.Stage) Lead {
	l.Stage = s
	return l
}
