package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder es una orden de venta a cliente. Transiciones:
// PENDING -> COMPLETED (resta stock) o PENDING -> CANCELLED; además
// COMPLETED -> CANCELLED está permitida y revierte la deducción con
// transacciones RETURN. CANCELLED es terminal.
type SalesOrder struct {
	ID            string
	OrderNumber   string // único, formato SO-yyyyMMdd-<sufijo>
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OrderDate     time.Time
	Status        string
	TotalAmount   decimal.Decimal
	Notes         string
	CompletedDate *time.Time
	Items         []SalesOrderItem
}

// SalesOrderItem línea de una orden de venta, con precio congelado al crear.
type SalesOrderItem struct {
	ID           string
	SalesOrderID string
	ProductID    string
	Quantity     int64
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
}
