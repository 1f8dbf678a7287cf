package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. QuantityInStock se mantiene
// exclusivamente vía el ledger de stock (nunca se escribe directo desde la UI);
// el invariante es QuantityInStock >= 0 y reproducible reproduciendo sus
// transacciones de stock.
type Product struct {
	ID                string
	SKU               string // código único del producto
	Name              string
	Description       string
	UnitPrice         decimal.Decimal // precio de venta, 2 decimales
	QuantityInStock   int64
	MinimumStockLevel int64 // umbral para reporte de stock bajo
	CategoryID        string
	SupplierID        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LowStock indica si el producto está en o por debajo del umbral mínimo.
func (p *Product) LowStock() bool {
	return p.QuantityInStock <= p.MinimumStockLevel
}

// OutOfStock indica si no hay unidades disponibles.
func (p *Product) OutOfStock() bool {
	return p.QuantityInStock <= 0
}
