package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput línea de entrada al crear una orden. UnitPrice es opcional:
// cero o ausente toma el precio actual del producto (snapshot al crear).
type OrderItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Valid indica si la línea cuenta para la orden; las inválidas se descartan.
func (i OrderItemInput) Valid() bool {
	return i.ProductID != "" && i.Quantity > 0
}

// CreatePurchaseOrderRequest alta de orden de compra.
type CreatePurchaseOrderRequest struct {
	SupplierID string           `json:"supplier_id"`
	Notes      string           `json:"notes"`
	Items      []OrderItemInput `json:"items"`
}

// CreateSalesOrderRequest alta de orden de venta.
type CreateSalesOrderRequest struct {
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	Notes         string           `json:"notes"`
	Items         []OrderItemInput `json:"items"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse orden de compra con sus líneas.
type PurchaseOrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	SupplierID    string              `json:"supplier_id"`
	OrderDate     time.Time           `json:"order_date"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Notes         string              `json:"notes,omitempty"`
	CompletedDate *time.Time          `json:"completed_date,omitempty"`
	Items         []OrderItemResponse `json:"items"`
}

// SalesOrderResponse orden de venta con sus líneas.
type SalesOrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	OrderDate     time.Time           `json:"order_date"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Notes         string              `json:"notes,omitempty"`
	CompletedDate *time.Time          `json:"completed_date,omitempty"`
	Items         []OrderItemResponse `json:"items"`
}
