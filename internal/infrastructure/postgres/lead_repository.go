package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	db Querier
}

// NewLeadRepository construye el adaptador; db puede ser el pool o una transacción.
func NewLeadRepository(db Querier) *LeadRepo {
	return &LeadRepo{db: db}
}

const leadColumns = `id, name, company, email, phone, stage, ticket_value, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLead lee la etapa como texto libre: filas antiguas pueden traer etiquetas fuera del
// conjunto canónico o en minúsculas, y Normalize las lleva a una etapa válida.
func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		l                            entity.Lead
		company, email, phone, notes *string
		stage                        string
		ticket                       decimal.NullDecimal
	)
	if err := row.Scan(&l.ID, &l.Name, &company, &email, &phone, &stage, &ticket, &notes,
		&l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Company = stringOrEmpty(company)
	l.Email = stringOrEmpty(email)
	l.Phone = stringOrEmpty(phone)
	l.Notes = stringOrEmpty(notes)
	l.Stage = pipeline.Normalize(stage)
	l.TicketValue = ticket
	return &l, nil
}

// ListNewestFirst lista los leads por fecha de creación descendente.
func (r *LeadRepo) ListNewestFirst(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.db.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetByID obtiene un lead; devuelve domain.ErrNotFound si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	l, err := scanLead(r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// Upsert inserta o reemplaza el lead por id. created_at no se modifica en una actualización.
func (r *LeadRepo) Upsert(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, company = EXCLUDED.company, email = EXCLUDED.email,
			phone = EXCLUDED.phone, stage = EXCLUDED.stage, ticket_value = EXCLUDED.ticket_value,
			notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.Name, nullString(l.Company), nullString(l.Email), nullString(l.Phone),
		l.Stage.String(), l.TicketValue, nullString(l.Notes), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lead %s", domain.ErrDuplicate, l.ID)
		}
		return fmt.Errorf("upsert lead: %w", err)
	}
	return nil
}

// UpdateStage escribe la etapa completa del lead.
func (r *LeadRepo) UpdateStage(ctx context.Context, id string, stage pipeline.Stage) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE leads SET stage = $2, updated_at = NOW() WHERE id = $1`, id, stage.String())
	if err != nil {
		return fmt.Errorf("update lead stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lead %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el lead; devuelve domain.ErrNotFound si no existía.
func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lead %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
