package memory

import (
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo ledger en memoria, append-only.
type StockTransactionRepo struct {
	store *Store
}

func NewStockTransactionRepository(store *Store) *StockTransactionRepo {
	return &StockTransactionRepo{store: store}
}

func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *tx
	r.store.transactions = append(r.store.transactions, &c)
	return nil
}

func (r *StockTransactionRepo) List(f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.StockTransaction
	for _, t := range r.store.transactions {
		if f.ProductID != "" && t.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.From != nil && t.TransactionDate.Before(*f.From) {
			continue
		}
		if f.To != nil && t.TransactionDate.After(*f.To) {
			continue
		}
		c := *t
		list = append(list, &c)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].TransactionDate.After(list[j].TransactionDate) })
	return page(list, f.Limit, f.Offset), nil
}

func (r *StockTransactionRepo) ListByProduct(productID string) ([]*entity.StockTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.StockTransaction
	for _, t := range r.store.transactions {
		if t.ProductID == productID {
			c := *t
			list = append(list, &c)
		}
	}
	// orden de inserción = orden cronológico
	return list, nil
}

func (r *StockTransactionRepo) ListRecent(n int) ([]*entity.StockTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list := make([]*entity.StockTransaction, 0, len(r.store.transactions))
	for _, t := range r.store.transactions {
		c := *t
		list = append(list, &c)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].TransactionDate.After(list[j].TransactionDate) })
	if n > 0 && n < len(list) {
		list = list[:n]
	}
	return list, nil
}
