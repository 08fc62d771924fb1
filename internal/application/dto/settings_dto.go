package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsRequest body para PUT /api/settings (reemplazo completo).
type SettingsRequest struct {
	CompanyName        string          `json:"company_name" validate:"omitempty,max=200"`
	CompanyAddress     string          `json:"company_address" validate:"omitempty,max=300"`
	CompanyPostalCode  string          `json:"company_postal_code" validate:"omitempty,max=20"`
	CompanyCity        string          `json:"company_city" validate:"omitempty,max=100"`
	CompanyCountry     string          `json:"company_country" validate:"omitempty,max=100"`
	CompanyEmail       string          `json:"company_email" validate:"omitempty,email"`
	CompanyPhone       string          `json:"company_phone" validate:"omitempty,max=50"`
	IBAN               string          `json:"iban" validate:"omitempty,max=50"`
	BIC                string          `json:"bic" validate:"omitempty,max=20"`
	BankName           string          `json:"bank_name" validate:"omitempty,max=100"`
	TaxNumber          string          `json:"tax_number" validate:"omitempty,max=50"`
	LogoURL            string          `json:"logo_url" validate:"omitempty,url"`
	InvoicePrefix      string          `json:"invoice_prefix" validate:"required,min=1,max=20"`
	InvoiceStartNumber int             `json:"invoice_start_number" validate:"min=1,max=999999999"`
	DefaultDueDays     int             `json:"default_due_days" validate:"min=1,max=365"`
	TaxEnabled         bool            `json:"tax_enabled"`
	TaxRate            decimal.Decimal `json:"tax_rate" validate:"min=0,max=100"`
}

// SettingsResponse configuración actual.
type SettingsResponse struct {
	CompanyName        string          `json:"company_name"`
	CompanyAddress     string          `json:"company_address"`
	CompanyPostalCode  string          `json:"company_postal_code"`
	CompanyCity        string          `json:"company_city"`
	CompanyCountry     string          `json:"company_country"`
	CompanyEmail       string          `json:"company_email"`
	CompanyPhone       string          `json:"company_phone"`
	IBAN               string          `json:"iban"`
	BIC                string          `json:"bic"`
	BankName           string          `json:"bank_name"`
	TaxNumber          string          `json:"tax_number"`
	LogoURL            string          `json:"logo_url"`
	InvoicePrefix      string          `json:"invoice_prefix"`
	InvoiceStartNumber int             `json:"invoice_start_number"`
	InvoiceNextNumber  int             `json:"invoice_next_number"`
	DefaultDueDays     int             `json:"default_due_days"`
	TaxEnabled         bool            `json:"tax_enabled"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
