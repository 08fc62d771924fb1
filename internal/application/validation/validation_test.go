package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, got %v", err)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestStruct_Valido(t *testing.T) {
	v := validation.New()
	err := v.Struct(dto.CreateProductRequest{Name: "Tornillo", SalePrice: decimal.RequireFromString("0.10")})
	assert.NoError(t, err)
}

func TestStruct_CamposConNombreJSON(t *testing.T) {
	v := validation.New()
	err := v.Struct(dto.CreateProductRequest{
		SalePrice: decimal.NewFromInt(-1),
		MinStock:  -2,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "sale_price")
	assert.Contains(t, fields, "min_stock")
	assert.Equal(t, "debe ser mayor o igual a 0", fields["sale_price"])
}

func TestStruct_LoginEmail(t *testing.T) {
	v := validation.New()
	fields := fieldsOf(t, v.Struct(dto.LoginRequest{Email: "no-es-email", Password: "x"}))
	assert.Equal(t, "no es un email válido", fields["email"])
}

func TestStruct_PosicionesDeFactura(t *testing.T) {
	v := validation.New()
	req := dto.CreateInvoiceRequest{
		CustomerID:  "3f2504e0-4f89-11d3-9a0c-0305e82c3301",
		InvoiceDate: "2026-13-01",
		Items:       []dto.InvoiceItemRequest{{Title: "", Quantity: 0}},
	}
	fields := fieldsOf(t, v.Struct(req))
	assert.Contains(t, fields, "invoice_date")
	assert.Contains(t, fields, "items[0].title")
	assert.Contains(t, fields, "items[0].quantity")
}

func TestStruct_FacturaSinPosiciones(t *testing.T) {
	v := validation.New()
	req := dto.CreateInvoiceRequest{
		CustomerID:  "3f2504e0-4f89-11d3-9a0c-0305e82c3301",
		InvoiceDate: "2026-01-15",
	}
	fields := fieldsOf(t, v.Struct(req))
	assert.Contains(t, fields, "items")
}

func TestStruct_TasaDeImpuestoFueraDeRango(t *testing.T) {
	v := validation.New()
	req := dto.SettingsRequest{
		InvoicePrefix:      "FAC",
		InvoiceStartNumber: 1,
		DefaultDueDays:     14,
		TaxRate:            decimal.NewFromInt(150),
	}
	fields := fieldsOf(t, v.Struct(req))
	assert.Equal(t, "debe ser menor o igual a 100", fields["tax_rate"])
}
