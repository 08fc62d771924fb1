package dto

import "github.com/jhoicas/backoffice-api/internal/domain"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo (delete, logout).
type MessageResponse struct {
	Message string `json:"message"`
}
