package entity

import "time"

// Company empresa asociada a leads (cuenta cliente).
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	Phone     string
	Email     string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
