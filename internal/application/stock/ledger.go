// Package stock implementa el ledger de stock: el único camino por el que
// cambia Product.QuantityInStock. Toda mutación bloquea la fila del producto
// (SELECT FOR UPDATE), aplica un delta firmado y agrega una StockTransaction
// inmutable con el saldo resultante, dentro de la transacción del caller.
package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AppendInput parámetros del append al ledger.
type AppendInput struct {
	ProductID string
	Type      string // entity.TransactionType*
	Delta     int64  // firmado: positivo entrada, negativo salida
	Reference string
	Notes     string
	Now       time.Time
}

// Append es la primitiva compartida del ledger. Debe invocarse con
// repositorios atados a una transacción abierta (vía TxRunner): bloquea la
// fila del producto, verifica que el saldo resultante no sea negativo,
// actualiza QuantityInStock + UpdatedAt y agrega la transacción con
// BalanceAfter igual a la cantidad post-mutación.
//
// Retorna ErrNotFound si el producto no existe e InsufficientStockError si el
// delta dejaría el saldo por debajo de cero.
func Append(
	productRepo repository.ProductRepository,
	txnRepo repository.StockTransactionRepository,
	in AppendInput,
) (*entity.StockTransaction, error) {
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	newQty := product.QuantityInStock + in.Delta
	if newQty < 0 {
		return nil, &domain.InsufficientStockError{
			ProductName: product.Name,
			Available:   product.QuantityInStock,
			Requested:   -in.Delta,
		}
	}

	if err := productRepo.UpdateStock(in.ProductID, newQty, in.Now); err != nil {
		return nil, err
	}

	txn := &entity.StockTransaction{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		Type:            in.Type,
		Quantity:        in.Delta,
		BalanceAfter:    newQty,
		Reference:       in.Reference,
		Notes:           in.Notes,
		TransactionDate: in.Now,
		CreatedAt:       in.Now,
	}
	if err := txnRepo.Create(txn); err != nil {
		return nil, err
	}
	return txn, nil
}
