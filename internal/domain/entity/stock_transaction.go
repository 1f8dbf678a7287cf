package entity

import "time"

// Tipos de transacción de stock.
const (
	TransactionTypePurchase   = "PURCHASE"   // entrada por orden de compra
	TransactionTypeSale       = "SALE"       // salida por orden de venta
	TransactionTypeAdjustment = "ADJUSTMENT" // ajuste manual
	TransactionTypeReturn     = "RETURN"     // reverso por cancelación de venta completada
)

// StockTransaction es un hecho inmutable del ledger: se crea una vez y nunca
// se actualiza ni se borra. Quantity es el delta firmado (positivo = entrada,
// negativo = salida) y BalanceAfter la cantidad del producto inmediatamente
// después de aplicar el delta. Reproducir todas las transacciones de un
// producto en orden debe dar exactamente su QuantityInStock actual.
type StockTransaction struct {
	ID              string
	ProductID       string
	Type            string
	Quantity        int64
	BalanceAfter    int64
	Reference       string // enlace libre a la operación origen, ej. "PO: PO-20251210-1a2b3c4d"
	Notes           string
	TransactionDate time.Time
	CreatedAt       time.Time
}
