package dto

import "time"

// UpsertCompanyRequest entrada de POST /api/companies.
type UpsertCompanyRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	CNPJ  string `json:"cnpj"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	City  string `json:"city"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse envoltorio {"companies": [...]}.
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// CompanyEnvelope envoltorio {"company": {...}}.
type CompanyEnvelope struct {
	Company CompanyResponse `json:"company"`
}
