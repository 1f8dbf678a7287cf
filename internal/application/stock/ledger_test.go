package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stockEnv struct {
	store    *memory.Store
	runner   *memory.TxRunner
	adjuster *stock.AdjusterUseCase
}

func newStockEnv(t *testing.T) *stockEnv {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	return &stockEnv{
		store:    store,
		runner:   runner,
		adjuster: stock.NewAdjusterUseCase(runner, logger.Nop()),
	}
}

// seedProduct crea un producto con el stock indicado (carga directa, sin ledger).
func (e *stockEnv) seedProduct(t *testing.T, name string, qty int64) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	repo := memory.NewProductRepository(e.store)
	require.NoError(t, repo.Create(&entity.Product{
		ID:        id,
		SKU:       "SKU-" + id[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	if qty != 0 {
		require.NoError(t, repo.UpdateStock(id, qty, now))
	}
	return id
}

func (e *stockEnv) productQty(t *testing.T, id string) int64 {
	t.Helper()
	p, err := memory.NewProductRepository(e.store).GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantityInStock
}

func (e *stockEnv) transactions(t *testing.T, productID string) []*entity.StockTransaction {
	t.Helper()
	list, err := memory.NewStockTransactionRepository(e.store).ListByProduct(productID)
	require.NoError(t, err)
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_AgregaYRegistraEnLedger(t *testing.T) {
	env := newStockEnv(t)
	id := env.seedProduct(t, "Tornillos", 0)

	require.NoError(t, env.adjuster.AddStock(context.Background(), id, 20, "carga inicial"))

	assert.Equal(t, int64(20), env.productQty(t, id))
	txns := env.transactions(t, id)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionTypeAdjustment, txns[0].Type)
	assert.Equal(t, int64(20), txns[0].Quantity)
	assert.Equal(t, int64(20), txns[0].BalanceAfter)
	assert.Equal(t, "Manual Stock Addition", txns[0].Reference)
	assert.Equal(t, "carga inicial", txns[0].Notes)
}

func TestRemoveStock_RestaYRegistraEnLedger(t *testing.T) {
	env := newStockEnv(t)
	id := env.seedProduct(t, "Tuercas", 10)

	require.NoError(t, env.adjuster.RemoveStock(context.Background(), id, 4, "merma"))

	assert.Equal(t, int64(6), env.productQty(t, id))
	txns := env.transactions(t, id)
	require.Len(t, txns, 1)
	assert.Equal(t, int64(-4), txns[0].Quantity)
	assert.Equal(t, int64(6), txns[0].BalanceAfter)
	assert.Equal(t, "Manual Stock Removal", txns[0].Reference)
}

func TestRemoveStock_SaldoNegativoRechazado(t *testing.T) {
	env := newStockEnv(t)
	id := env.seedProduct(t, "Arandelas", 2)

	err := env.adjuster.RemoveStock(context.Background(), id, 5, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, "Arandelas", insuf.ProductName)
	assert.Equal(t, int64(2), insuf.Available)
	assert.Equal(t, int64(5), insuf.Requested)

	// Nada aplicado: ni stock ni ledger.
	assert.Equal(t, int64(2), env.productQty(t, id))
	assert.Empty(t, env.transactions(t, id))
}

func TestAdjustStock_DespachaPorSigno(t *testing.T) {
	env := newStockEnv(t)
	id := env.seedProduct(t, "Clavos", 5)

	require.NoError(t, env.adjuster.AdjustStock(context.Background(), id, 3, ""))
	assert.Equal(t, int64(8), env.productQty(t, id))

	require.NoError(t, env.adjuster.AdjustStock(context.Background(), id, -2, ""))
	assert.Equal(t, int64(6), env.productQty(t, id))

	// Cero es no-op: ni error ni transacción nueva.
	require.NoError(t, env.adjuster.AdjustStock(context.Background(), id, 0, ""))
	assert.Len(t, env.transactions(t, id), 2)
}

func TestAdjuster_EntradaInvalida(t *testing.T) {
	env := newStockEnv(t)
	id := env.seedProduct(t, "Pernos", 5)

	assert.ErrorIs(t, env.adjuster.AddStock(context.Background(), "", 1, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, env.adjuster.AddStock(context.Background(), id, 0, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, env.adjuster.AddStock(context.Background(), id, -3, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, env.adjuster.RemoveStock(context.Background(), id, -3, ""), domain.ErrInvalidInput)
}

func TestAdjuster_ProductoInexistente(t *testing.T) {
	env := newStockEnv(t)
	err := env.adjuster.AddStock(context.Background(), uuid.New().String(), 5, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del ledger: reproducir las transacciones da el stock actual
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ReproducirTransaccionesDaElSaldo(t *testing.T) {
	env := newStockEnv(t)
	id := env.seedProduct(t, "Cemento", 0)
	ctx := context.Background()

	require.NoError(t, env.adjuster.AddStock(ctx, id, 50, ""))
	require.NoError(t, env.adjuster.RemoveStock(ctx, id, 12, ""))
	require.NoError(t, env.adjuster.AddStock(ctx, id, 7, ""))
	require.NoError(t, env.adjuster.RemoveStock(ctx, id, 30, ""))

	txns := env.transactions(t, id)
	require.Len(t, txns, 4)

	var balance int64
	for _, txn := range txns {
		balance += txn.Quantity
		assert.Equal(t, balance, txn.BalanceAfter,
			"cada transacción debe llevar el saldo posterior a su aplicación")
	}
	assert.Equal(t, env.productQty(t, id), balance,
		"reproducir el ledger debe dar exactamente el stock actual")
}

// ──────────────────────────────────────────────────────────────────────────────
// Append directo: atomicidad vía TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_FallaDeLineaRevierteLaTransaccion(t *testing.T) {
	env := newStockEnv(t)
	okID := env.seedProduct(t, "Pintura", 10)
	lowID := env.seedProduct(t, "Rodillos", 1)

	// Dos appends en la misma transacción; el segundo falla por disponibilidad
	// y el primero debe revertirse.
	err := env.runner.Run(context.Background(), func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		if _, err := stock.Append(productRepo, txnRepo, stock.AppendInput{
			ProductID: okID, Type: entity.TransactionTypeSale, Delta: -5, Now: time.Now(),
		}); err != nil {
			return err
		}
		_, err := stock.Append(productRepo, txnRepo, stock.AppendInput{
			ProductID: lowID, Type: entity.TransactionTypeSale, Delta: -3, Now: time.Now(),
		})
		return err
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, int64(10), env.productQty(t, okID), "el primer append debe revertirse")
	assert.Equal(t, int64(1), env.productQty(t, lowID))
	assert.Empty(t, env.transactions(t, okID))
	assert.Empty(t, env.transactions(t, lowID))
}
