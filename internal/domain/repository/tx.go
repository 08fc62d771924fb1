package repository

import "context"

// BillingTxRunner ejecuta fn dentro de una transacción con los repos de configuración y facturas
// atados a ella. Si fn devuelve error se hace rollback.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(settings SettingsRepository, invoices InvoiceRepository) error) error
}

// StockTxRunner ejecuta fn dentro de una transacción con los repos de productos y movimientos
// de stock atados a ella. Si fn devuelve error se hace rollback.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(products ProductRepository, movements StockMovementRepository) error) error
}
