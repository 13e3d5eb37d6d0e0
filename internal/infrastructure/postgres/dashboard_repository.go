package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas para el panel.
type DashboardRepo struct {
	db Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(db Querier) *DashboardRepo {
	return &DashboardRepo{db: db}
}

// TotalsByStage agrupa por la etiqueta almacenada y fusiona en Go las variantes que
// normalizan a la misma etapa ("proposta", " PROPOSTA"...). Devuelve una fila por etapa canónica.
func (r *DashboardRepo) TotalsByStage(ctx context.Context) ([]repository.StageTotals, error) {
	rows, err := r.db.Query(ctx, `
		SELECT stage, COUNT(*), COALESCE(SUM(ticket_value), 0)
		FROM leads GROUP BY stage`)
	if err != nil {
		return nil, fmt.Errorf("totals by stage: %w", err)
	}
	defer rows.Close()

	acc := make(map[pipeline.Stage]*repository.StageTotals)
	for rows.Next() {
		var (
			raw   string
			count int
			total decimal.Decimal
		)
		if err := rows.Scan(&raw, &count, &total); err != nil {
			return nil, fmt.Errorf("scan stage totals: %w", err)
		}
		st := pipeline.Normalize(raw)
		t, ok := acc[st]
		if !ok {
			t = &repository.StageTotals{Stage: st, TicketTotal: decimal.Zero}
			acc[st] = t
		}
		t.Count += count
		t.TicketTotal = t.TicketTotal.Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]repository.StageTotals, 0, len(pipeline.Stages()))
	for _, st := range pipeline.Stages() {
		if t, ok := acc[st]; ok {
			out = append(out, *t)
			continue
		}
		out = append(out, repository.StageTotals{Stage: st, TicketTotal: decimal.Zero})
	}
	return out, nil
}

// CountCompanies total de empresas registradas.
func (r *DashboardRepo) CountCompanies(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}
