package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden (compra o venta).
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// PurchaseOrder es una orden de compra a proveedor. Transiciones:
// PENDING -> COMPLETED (suma stock) o PENDING -> CANCELLED (sin efecto en stock).
// Una orden COMPLETED es registro histórico permanente: no se borra ni transiciona.
type PurchaseOrder struct {
	ID            string
	OrderNumber   string // único, formato PO-yyyyMMdd-<sufijo>
	SupplierID    string
	OrderDate     time.Time
	Status        string
	TotalAmount   decimal.Decimal // invariante: suma de TotalPrice de los items
	Notes         string
	CompletedDate *time.Time
	Items         []PurchaseOrderItem
}

// PurchaseOrderItem línea de una orden de compra, con precio congelado al crear.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Quantity        int64
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal // Quantity × UnitPrice
}
