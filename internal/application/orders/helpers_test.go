package orders_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/orders"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ordersEnv arma el entorno completo de órdenes sobre la infraestructura en
// memoria: mismos contratos de atomicidad y serialización que postgres.
type ordersEnv struct {
	store    *memory.Store
	runner   *memory.TxRunner
	purchase *orders.PurchaseUseCase
	sales    *orders.SalesUseCase
	adjuster *stock.AdjusterUseCase
}

func newOrdersEnv(t *testing.T) *ordersEnv {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	productRepo := memory.NewProductRepository(store)
	supplierRepo := memory.NewSupplierRepository(store)
	purchaseRepo := memory.NewPurchaseOrderRepository(store)
	salesRepo := memory.NewSalesOrderRepository(store)
	log := logger.Nop()
	return &ordersEnv{
		store:    store,
		runner:   runner,
		purchase: orders.NewPurchaseUseCase(runner, purchaseRepo, productRepo, supplierRepo, log),
		sales:    orders.NewSalesUseCase(runner, salesRepo, productRepo, log),
		adjuster: stock.NewAdjusterUseCase(runner, log),
	}
}

func (e *ordersEnv) seedSupplier(t *testing.T, name string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, memory.NewSupplierRepository(e.store).Create(&entity.Supplier{
		ID: id, Name: name, CreatedAt: time.Now(),
	}))
	return id
}

func (e *ordersEnv) seedProduct(t *testing.T, name string, qty int64, price string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	repo := memory.NewProductRepository(e.store)
	require.NoError(t, repo.Create(&entity.Product{
		ID:        id,
		SKU:       "SKU-" + id[:8],
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		CreatedAt: now,
		UpdatedAt: now,
	}))
	if qty != 0 {
		require.NoError(t, repo.UpdateStock(id, qty, now))
	}
	return id
}

func (e *ordersEnv) productQty(t *testing.T, id string) int64 {
	t.Helper()
	p, err := memory.NewProductRepository(e.store).GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantityInStock
}

func (e *ordersEnv) transactions(t *testing.T, productID string) []*entity.StockTransaction {
	t.Helper()
	list, err := memory.NewStockTransactionRepository(e.store).ListByProduct(productID)
	require.NoError(t, err)
	return list
}

func (e *ordersEnv) countByType(t *testing.T, productID, txnType string) int {
	t.Helper()
	n := 0
	for _, txn := range e.transactions(t, productID) {
		if txn.Type == txnType {
			n++
		}
	}
	return n
}
