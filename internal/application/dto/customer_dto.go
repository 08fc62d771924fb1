package dto

import "time"

// CustomerRequest body para POST y PUT de /api/customers. PUT reemplaza todos los campos.
type CustomerRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Company    string `json:"company" validate:"omitempty,max=200"`
	Address    string `json:"address" validate:"omitempty,max=300"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"omitempty,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	TaxID      string `json:"tax_id" validate:"omitempty,max=50"`
	Notes      string `json:"notes" validate:"omitempty,max=2000"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Company    string    `json:"company"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	TaxID      string    `json:"tax_id"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BatchResult resumen de una carga masiva de clientes.
type BatchResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
