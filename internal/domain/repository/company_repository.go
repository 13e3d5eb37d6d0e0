package repository

import (
	"context"

	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	ListByName(ctx context.Context) ([]*entity.Company, error)
	Upsert(ctx context.Context, company *entity.Company) error
}
