package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionFilter criterios de consulta sobre el ledger (auditoría/reportes).
type TransactionFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockTransactionRepository puerto de persistencia del ledger de stock.
// El ledger es append-only: no hay Update ni Delete.
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	List(f TransactionFilter) ([]*entity.StockTransaction, error)
	ListByProduct(productID string) ([]*entity.StockTransaction, error)
	ListRecent(n int) ([]*entity.StockTransaction, error)
}
