package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestSalesCreate_ValidaDisponibilidadSinMoverStock(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Monitor", 10, "850000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Carlos Pérez",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("3400000.00")))

	// Crear no deduce: la deducción ocurre al completar.
	assert.Equal(t, int64(10), env.productQty(t, p1))
	assert.Empty(t, env.transactions(t, p1))
}

func TestSalesCreate_StockInsuficienteConDetalle(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Teclado", 2, "95000.00")

	_, err := env.sales.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerName: "Ana Ruiz",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 5}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, "Teclado", insuf.ProductName)
	assert.Equal(t, int64(2), insuf.Available)
	assert.Equal(t, int64(5), insuf.Requested)

	// La orden no se crea y nada cambia.
	list, listErr := env.sales.List(context.Background(), 20, 0)
	require.NoError(t, listErr)
	assert.Empty(t, list)
	assert.Equal(t, int64(2), env.productQty(t, p1))
}

func TestSalesComplete_DeduceYRegistraEnLedger(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Mouse", 20, "45000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Luis Gómez",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 18}},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Complete(ctx, order.ID))

	assert.Equal(t, int64(2), env.productQty(t, p1))

	txns := env.transactions(t, p1)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionTypeSale, txns[0].Type)
	assert.Equal(t, int64(-18), txns[0].Quantity)
	assert.Equal(t, int64(2), txns[0].BalanceAfter)
	assert.Equal(t, "SO: "+order.OrderNumber, txns[0].Reference)

	got, err := env.sales.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedDate)
}

func TestSalesComplete_RevalidaDisponibilidad(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Impresora", 5, "1200000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "María Díaz",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 5}},
	})
	require.NoError(t, err)

	// El stock se drena entre la creación y el despacho.
	require.NoError(t, env.adjuster.RemoveStock(ctx, p1, 3, "rotura en bodega"))

	err = env.sales.Complete(ctx, order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La orden sigue PENDING, sin deducción ni entradas SALE.
	got, getErr := env.sales.GetByID(ctx, order.ID)
	require.NoError(t, getErr)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	assert.Equal(t, int64(2), env.productQty(t, p1))
	assert.Equal(t, 0, env.countByType(t, p1, entity.TransactionTypeSale))
}

func TestSalesComplete_SoloDesdePendiente(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Router", 10, "220000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Pedro León",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 3}},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Complete(ctx, order.ID))

	// Completar dos veces no deduce dos veces.
	assert.ErrorIs(t, env.sales.Complete(ctx, order.ID), domain.ErrInvalidStatus)
	assert.Equal(t, int64(7), env.productQty(t, p1))
	assert.Len(t, env.transactions(t, p1), 1)

	assert.ErrorIs(t, env.sales.Complete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestSalesCancel_PendienteSinEfectoEnStock(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Switch", 8, "350000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Sofía Vega",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Cancel(ctx, order.ID))

	assert.Equal(t, int64(8), env.productQty(t, p1))
	assert.Empty(t, env.transactions(t, p1))

	got, err := env.sales.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)

	// CANCELLED es terminal.
	assert.ErrorIs(t, env.sales.Cancel(ctx, order.ID), domain.ErrInvalidStatus)
}

func TestSalesCancel_CompletadaDevuelveStockConReturns(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Disco SSD", 12, "280000.00")
	p2 := env.seedProduct(t, "Memoria RAM", 6, "190000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Jorge Mora",
		Items: []dto.OrderItemInput{
			{ProductID: p1, Quantity: 5},
			{ProductID: p2, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Complete(ctx, order.ID))
	assert.Equal(t, int64(7), env.productQty(t, p1))

	require.NoError(t, env.sales.Cancel(ctx, order.ID))

	// Completar y cancelar deja el stock idéntico a nunca haber completado.
	assert.Equal(t, int64(12), env.productQty(t, p1))
	assert.Equal(t, int64(6), env.productQty(t, p2))

	// Exactamente una entrada RETURN por línea, con la referencia de cancelación.
	assert.Equal(t, 1, env.countByType(t, p1, entity.TransactionTypeReturn))
	assert.Equal(t, 1, env.countByType(t, p2, entity.TransactionTypeReturn))
	for _, txn := range env.transactions(t, p1) {
		if txn.Type == entity.TransactionTypeReturn {
			assert.Equal(t, int64(5), txn.Quantity)
			assert.Equal(t, "SO: "+order.OrderNumber+" (Cancelled)", txn.Reference)
		}
	}

	got, err := env.sales.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)
}

func TestSalesDelete_CompletadaProhibida(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Cámara", 4, "520000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Elena Soto",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Complete(ctx, order.ID))

	assert.ErrorIs(t, env.sales.Delete(ctx, order.ID), domain.ErrInvalidStatus)
}

func TestSalesDelete_CanceladaConservaElLedger(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Proyector", 3, "1800000.00")
	ctx := context.Background()

	order, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Raúl Castro",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Complete(ctx, order.ID))
	require.NoError(t, env.sales.Cancel(ctx, order.ID))
	require.NoError(t, env.sales.Delete(ctx, order.ID))

	got, err := env.sales.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Las entradas SALE y RETURN sobreviven a la orden (auditoría).
	assert.Equal(t, 1, env.countByType(t, p1, entity.TransactionTypeSale))
	assert.Equal(t, 1, env.countByType(t, p1, entity.TransactionTypeReturn))
	assert.Equal(t, int64(3), env.productQty(t, p1))
}

// Dos órdenes compiten por la última unidad: exactamente una gana.
func TestSalesComplete_CarreraPorLaUltimaUnidad(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Laptop", 1, "3500000.00")
	ctx := context.Background()

	o1, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Cliente A",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 1}},
	})
	require.NoError(t, err)
	o2, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Cliente B",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 1}},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{o1.ID, o2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = env.sales.Complete(ctx, id)
		}(i, id)
	}
	wg.Wait()

	okCount, insufCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		default:
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			insufCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un completado debe ganar")
	assert.Equal(t, 1, insufCount)
	assert.Equal(t, int64(0), env.productQty(t, p1))
	assert.Equal(t, 1, env.countByType(t, p1, entity.TransactionTypeSale))
}

// Flujo completo compra→venta→cancelación con el ledger siempre consistente.
func TestOrdenes_FlujoCompletoConLedgerConsistente(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Distribuidora Norte")
	p1 := env.seedProduct(t, "Estabilizador", 0, "130000.00")
	ctx := context.Background()

	po, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 20}},
	})
	require.NoError(t, err)
	require.NoError(t, env.purchase.Complete(ctx, po.ID))
	assert.Equal(t, int64(20), env.productQty(t, p1))

	so, err := env.sales.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerName: "Comercial Sur",
		Items:        []dto.OrderItemInput{{ProductID: p1, Quantity: 18}},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Complete(ctx, so.ID))
	assert.Equal(t, int64(2), env.productQty(t, p1))

	require.NoError(t, env.sales.Cancel(ctx, so.ID))
	assert.Equal(t, int64(20), env.productQty(t, p1))

	// Reproducir el ledger da el stock actual y cada saldo intermedio cuadra.
	txns := env.transactions(t, p1)
	require.Len(t, txns, 3)
	var balance int64
	for _, txn := range txns {
		balance += txn.Quantity
		assert.Equal(t, balance, txn.BalanceAfter)
	}
	assert.Equal(t, env.productQty(t, p1), balance)
}
