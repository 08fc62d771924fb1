package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

func TestConflictosEnvuelvenErrConflict(t *testing.T) {
	for _, err := range []error{
		domain.ErrDuplicateSKU,
		domain.ErrEmailAlreadyExists,
		domain.ErrProductInUse,
		domain.ErrCustomerInUse,
		domain.ErrInvalidTransition,
		domain.ErrInvoiceNotEditable,
		domain.ErrInsufficientStock,
	} {
		assert.ErrorIs(t, err, domain.ErrConflict, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := error(&domain.ValidationError{Fields: []domain.FieldError{
		{Field: "name", Message: "es obligatorio"},
		{Field: "sale_price", Message: "debe ser mayor o igual a 0"},
	}})
	wrapped := fmt.Errorf("crear producto: %w", err)

	assert.ErrorIs(t, wrapped, domain.ErrValidation)
	var verr *domain.ValidationError
	assert.True(t, errors.As(wrapped, &verr))
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, err.Error(), "name: es obligatorio")
}
