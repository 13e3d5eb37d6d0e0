package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// List lista empresas por nombre.
func (uc *CompanyUseCase) List(ctx context.Context) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.ListByName(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Companies: items}, nil
}

// Upsert crea o actualiza una empresa. Devuelve domain.ErrDuplicate si el CNPJ ya pertenece a otra.
func (uc *CompanyUseCase) Upsert(ctx context.Context, in dto.UpsertCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	company := &entity.Company{
		ID:        strings.TrimSpace(in.ID),
		Name:      name,
		CNPJ:      strings.TrimSpace(in.CNPJ),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		City:      strings.TrimSpace(in.City),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	if err := uc.repo.Upsert(ctx, company); err != nil {
		return nil, err
	}
	resp := entityToCompanyResponse(company)
	return &resp, nil
}

func entityToCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Phone:     c.Phone,
		Email:     c.Email,
		City:      c.City,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
