package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/orders"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner versión en memoria: serializa transacciones completas con un mutex
// (equivalente funcional del FOR UPDATE por fila: ninguna otra transacción ve
// estado intermedio ni decide sobre stock obsoleto) y revierte todo el estado
// vía snapshot si fn falla.
type TxRunner struct {
	store *Store
	txMu  sync.Mutex
}

// NewTxRunner construye el runner sobre un store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(fn func() error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.store.mu.Lock()
	snap := r.store.snapshotLocked()
	r.store.mu.Unlock()

	if err := fn(); err != nil {
		r.store.mu.Lock()
		r.store.restoreLocked(snap)
		r.store.mu.Unlock()
		return err
	}
	return nil
}

// Run ejecuta fn con repos de producto y ledger, atómicamente.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txnRepo repository.StockTransactionRepository,
) error) error {
	return r.run(func() error {
		return fn(NewProductRepository(r.store), NewStockTransactionRepository(r.store))
	})
}

// RunOrders ejecuta fn con los repos de órdenes además de producto y ledger.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txnRepo repository.StockTransactionRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	salesRepo repository.SalesOrderRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewProductRepository(r.store),
			NewStockTransactionRepository(r.store),
			NewPurchaseOrderRepository(r.store),
			NewSalesOrderRepository(r.store),
		)
	})
}
