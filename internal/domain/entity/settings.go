package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID id fijo del único registro de configuración.
const SettingsID = "default"

// Settings perfil de la empresa, numeración de facturas e impuestos. Existe exactamente una fila.
type Settings struct {
	ID          string
	CompanyName string
	Address     string
	PostalCode  string
	City        string
	Country     string
	Email       string
	Phone       string
	IBAN        string
	BIC         string
	Bank        string
	TaxNumber   string
	LogoURL     string

	InvoicePrefix      string
	InvoiceStartNumber int
	InvoiceNextNumber  int // próximo consecutivo a asignar
	DefaultDueDays     int

	TaxEnabled bool
	TaxRate    decimal.Decimal // porcentaje 0..100

	UpdatedAt time.Time
}

// DefaultSettings valores iniciales cuando la tabla está vacía.
func DefaultSettings(now time.Time) *Settings {
	return &Settings{
		ID:                 SettingsID,
		CompanyName:        "Mi Empresa",
		Country:            "España",
		InvoicePrefix:      "FAC",
		InvoiceStartNumber: 1,
		InvoiceNextNumber:  1,
		DefaultDueDays:     14,
		TaxEnabled:         false,
		TaxRate:            decimal.NewFromInt(19),
		UpdatedAt:          now,
	}
}

// EffectiveTaxRate tasa a congelar en una factura nueva.
func (s *Settings) EffectiveTaxRate() decimal.Decimal {
	if !s.TaxEnabled {
		return decimal.Zero
	}
	return s.TaxRate
}
