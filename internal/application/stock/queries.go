package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el ledger (auditoría y
// reportes): por producto, por tipo, por rango de fechas.
type QueryUseCase struct {
	txnRepo     repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(txnRepo repository.StockTransactionRepository, productRepo repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{txnRepo: txnRepo, productRepo: productRepo}
}

// ListTransactions lista transacciones según el filtro (producto, tipo, fechas).
func (uc *QueryUseCase) ListTransactions(_ context.Context, f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return uc.txnRepo.List(f)
}

// RecentTransactions últimas n transacciones (por defecto 50).
func (uc *QueryUseCase) RecentTransactions(_ context.Context, n int) ([]*entity.StockTransaction, error) {
	if n <= 0 {
		n = 50
	}
	return uc.txnRepo.ListRecent(n)
}

// HasSufficientStock indica si el producto tiene al menos qty unidades.
func (uc *QueryUseCase) HasSufficientStock(_ context.Context, productID string, qty int64) (bool, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, domain.ErrNotFound
	}
	return product.QuantityInStock >= qty, nil
}
