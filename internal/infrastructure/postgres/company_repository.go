package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// ListByName lista las empresas ordenadas por nombre.
func (r *CompanyRepo) ListByName(ctx context.Context) ([]*entity.Company, error) {
	query := `
		SELECT id, name, cnpj, phone, email, city, created_at, updated_at
		FROM companies ORDER BY name, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Company, 0)
	for rows.Next() {
		var (
			c                        entity.Company
			cnpj, phone, email, city *string
		)
		if err := rows.Scan(&c.ID, &c.Name, &cnpj, &phone, &email, &city, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		c.CNPJ = stringOrEmpty(cnpj)
		c.Phone = stringOrEmpty(phone)
		c.Email = stringOrEmpty(email)
		c.City = stringOrEmpty(city)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza por id. Un CNPJ repetido en otra empresa devuelve domain.ErrDuplicate.
func (r *CompanyRepo) Upsert(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, cnpj, phone, email, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, cnpj = EXCLUDED.cnpj, phone = EXCLUDED.phone,
			email = EXCLUDED.email, city = EXCLUDED.city, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, nullString(c.CNPJ), nullString(c.Phone), nullString(c.Email), nullString(c.City),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cnpj %s", domain.ErrDuplicate, c.CNPJ)
		}
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}
