package dto

// DashboardResponse resumen para la vista principal.
type DashboardResponse struct {
	TotalProducts         int                        `json:"total_products"`
	LowStockProducts      int                        `json:"low_stock_products"`
	PendingPurchaseOrders int                        `json:"pending_purchase_orders"`
	PendingSalesOrders    int                        `json:"pending_sales_orders"`
	RecentTransactions    []StockTransactionResponse `json:"recent_transactions"`
}
