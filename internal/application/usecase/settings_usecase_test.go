package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

func validSettings() dto.SettingsRequest {
	return dto.SettingsRequest{
		CompanyName:        "Ferretería Sol",
		InvoicePrefix:      "RE",
		InvoiceStartNumber: 1,
		DefaultDueDays:     30,
		TaxEnabled:         true,
		TaxRate:            decimal.NewFromInt(21),
	}
}

func TestSettings_GetCreaPorDefecto(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewStore().Settings(), validation.New())

	s, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FAC", s.InvoicePrefix)
	assert.Equal(t, 1, s.InvoiceNextNumber)
	assert.False(t, s.TaxEnabled)
}

func TestSettings_EnsureDefaultIdempotente(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewStore().Settings(), validation.New())
	ctx := context.Background()

	require.NoError(t, uc.EnsureDefault(ctx))
	_, err := uc.Update(ctx, validSettings())
	require.NoError(t, err)
	require.NoError(t, uc.EnsureDefault(ctx))

	s, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RE", s.InvoicePrefix, "EnsureDefault no pisa una fila existente")
}

func TestSettings_NumeroInicialSoloAvanza(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewStore().Settings(), validation.New())
	ctx := context.Background()

	in := validSettings()
	in.InvoiceStartNumber = 100
	s, err := uc.Update(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 100, s.InvoiceNextNumber)

	in.InvoiceStartNumber = 5
	s, err = uc.Update(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 5, s.InvoiceStartNumber)
	assert.Equal(t, 100, s.InvoiceNextNumber)
}

func TestSettings_Validacion(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memory.NewStore().Settings(), validation.New())

	in := validSettings()
	in.InvoicePrefix = "  "
	_, err := uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
