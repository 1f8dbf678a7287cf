package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const transactionColumns = `id, product_id, type, quantity, balance_after, reference, notes, transaction_date, created_at`

// StockTransactionRepo persistencia del ledger. Solo inserta y lee:
// las filas son inmutables.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador del ledger.
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create inserta una transacción del ledger.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, product_id, type, quantity, balance_after, reference, notes, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ProductID, tx.Type, tx.Quantity, tx.BalanceAfter,
		tx.Reference, tx.Notes, tx.TransactionDate, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// List consulta el ledger según filtro, más recientes primero.
func (r *StockTransactionRepo) List(f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE 1=1`
	var args []any
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += ` AND transaction_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}
	return r.list(query, args...)
}

// ListByProduct historial completo de un producto, en orden cronológico
// (permite reproducir el balance).
func (r *StockTransactionRepo) ListByProduct(productID string) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE product_id = $1 ORDER BY transaction_date ASC, created_at ASC`
	return r.list(query, productID)
}

// ListRecent las n transacciones más recientes (dashboard).
func (r *StockTransactionRepo) ListRecent(n int) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions ORDER BY transaction_date DESC, created_at DESC LIMIT $1`
	return r.list(query, n)
}

func (r *StockTransactionRepo) list(query string, args ...any) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.Type, &t.Quantity, &t.BalanceAfter,
			&t.Reference, &t.Notes, &t.TransactionDate, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
