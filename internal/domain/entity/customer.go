package entity

import "time"

// Customer representa un cliente (destinatario de facturas).
type Customer struct {
	ID         string
	Name       string
	Company    string
	Address    string
	PostalCode string
	City       string
	Country    string
	Email      string
	Phone      string
	TaxID      string // NIF / USt-IdNr.
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
