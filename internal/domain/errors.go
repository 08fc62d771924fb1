package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; cualquier otro error se considera interno.
var (
	ErrValidation         = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Conflictos concretos; todos envuelven ErrConflict.
var (
	ErrDuplicateSKU       = fmt.Errorf("%w: el SKU ya existe", ErrConflict)
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrProductInUse       = fmt.Errorf("%w: el producto se usa en facturas y no puede eliminarse", ErrConflict)
	ErrCustomerInUse      = fmt.Errorf("%w: el cliente tiene facturas y no puede eliminarse", ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
	ErrInvoiceNotEditable = fmt.Errorf("%w: solo se pueden modificar facturas en borrador", ErrConflict)
	ErrInsufficientStock  = fmt.Errorf("%w: stock insuficiente", ErrConflict)
)

// FieldError describe un campo inválido.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores por campo de una entrada. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un error con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
