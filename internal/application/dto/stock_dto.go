package dto

import "time"

// AdjustStockRequest entrada para ajustes manuales (add/remove/adjust).
// En add/remove Quantity debe ser > 0; en adjust el signo decide la dirección.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes"`
}

// StockTransactionResponse entrada del ledger en respuestas HTTP.
type StockTransactionResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	Type            string    `json:"type"`
	Quantity        int64     `json:"quantity"`
	BalanceAfter    int64     `json:"balance_after"`
	Reference       string    `json:"reference,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	TransactionDate time.Time `json:"transaction_date"`
}

// InsufficientStockResponse detalle del error de disponibilidad.
type InsufficientStockResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	ProductName string `json:"product_name"`
	Available   int64  `json:"available"`
	Requested   int64  `json:"requested"`
}
