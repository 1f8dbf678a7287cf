package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. El stock inicial no se define aquí:
// se carga con un ajuste manual para que quede registrado en el ledger.
type CreateProductRequest struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	CategoryID        string          `json:"category_id"`
	SupplierID        string          `json:"supplier_id"`
}

// UpdateProductRequest edición parcial. Campos nil no se tocan.
// QuantityInStock no es editable: se maneja vía ledger.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	MinimumStockLevel *int64           `json:"minimum_stock_level"`
	CategoryID        *string          `json:"category_id"`
	SupplierID        *string          `json:"supplier_id"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	QuantityInStock   int64           `json:"quantity_in_stock"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	LowStock          bool            `json:"low_stock"`
	CategoryID        string          `json:"category_id,omitempty"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
