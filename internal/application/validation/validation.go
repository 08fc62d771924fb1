// Package validation envuelve go-playground/validator y traduce sus errores a domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// Validator valida DTOs de entrada usando los tags `validate`.
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Los campos se reportan con su nombre JSON y
// decimal.Decimal se compara como número en min/max.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &Validator{v: v}
}

// Struct valida s. Devuelve nil o un *domain.ValidationError con un FieldError por campo.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validación: %w", err)
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.items[0].title" -> "items[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "no es un email válido"
	case "uuid":
		return "no es un identificador válido"
	case "url":
		return "no es una URL válida"
	case "datetime":
		return "debe tener formato " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "ne":
		return "no puede ser " + fe.Param()
	case "min":
		if isNumeric(fe.Kind()) {
			return "debe ser mayor o igual a " + fe.Param()
		}
		return "debe tener al menos " + fe.Param() + " elementos o caracteres"
	case "max":
		if isNumeric(fe.Kind()) {
			return "debe ser menor o igual a " + fe.Param()
		}
		return "admite como máximo " + fe.Param() + " caracteres"
	}
	return "no es válido (" + fe.Tag() + ")"
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
