package orders_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestPurchaseCreate_CongelaPreciosYCalculaTotales(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Ferretería Central")
	p1 := env.seedProduct(t, "Taladro", 0, "250000.00")
	p2 := env.seedProduct(t, "Broca", 0, "12000.00")

	order, err := env.purchase.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemInput{
			{ProductID: p1, Quantity: 2, UnitPrice: decimal.RequireFromString("240000.00")},
			{ProductID: p2, Quantity: 10}, // sin precio: toma el del producto
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("240000.00")))
	assert.True(t, order.Items[1].UnitPrice.Equal(decimal.RequireFromString("12000.00")),
		"línea sin precio debe congelar el precio actual del producto")
	// 2×240000 + 10×12000 = 600000
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("600000.00")),
		"TotalAmount debe ser la suma de las líneas, obtuve %s", order.TotalAmount)

	// Crear nunca mueve stock.
	assert.Equal(t, int64(0), env.productQty(t, p1))
	assert.Equal(t, int64(0), env.productQty(t, p2))
	assert.Empty(t, env.transactions(t, p1))
}

func TestPurchaseCreate_FormatoDeNumeroDeOrden(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Cable", 0, "1500.00")

	order, err := env.purchase.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PO-\d{8}-[0-9a-f]{8}$`), order.OrderNumber)
}

func TestPurchaseCreate_DescartaLineasInvalidas(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Lija", 0, "3000.00")

	// Las líneas inválidas se descartan; las válidas sobreviven.
	order, err := env.purchase.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemInput{
			{ProductID: "", Quantity: 5},
			{ProductID: p1, Quantity: 0},
			{ProductID: p1, Quantity: -2},
			{ProductID: p1, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(3), order.Items[0].Quantity)

	// Sin ninguna línea válida la orden no se crea.
	_, err = env.purchase.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: "", Quantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestPurchaseCreate_ProveedorInexistente(t *testing.T) {
	env := newOrdersEnv(t)
	p1 := env.seedProduct(t, "Martillo", 0, "45000.00")

	_, err := env.purchase.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "no-existe",
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseComplete_SumaStockYRegistraEnLedger(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Cemento", 5, "28000.00")
	p2 := env.seedProduct(t, "Arena", 0, "9000.00")
	ctx := context.Background()

	order, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemInput{
			{ProductID: p1, Quantity: 20},
			{ProductID: p2, Quantity: 15},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.purchase.Complete(ctx, order.ID))

	assert.Equal(t, int64(25), env.productQty(t, p1))
	assert.Equal(t, int64(15), env.productQty(t, p2))

	txns := env.transactions(t, p1)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionTypePurchase, txns[0].Type)
	assert.Equal(t, int64(20), txns[0].Quantity)
	assert.Equal(t, int64(25), txns[0].BalanceAfter)
	assert.Equal(t, "PO: "+order.OrderNumber, txns[0].Reference)

	got, err := env.purchase.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedDate)
}

func TestPurchaseComplete_SoloDesdePendiente(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Yeso", 0, "15000.00")
	ctx := context.Background()

	order, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 10}},
	})
	require.NoError(t, err)
	require.NoError(t, env.purchase.Complete(ctx, order.ID))

	// Completar dos veces no duplica stock.
	err = env.purchase.Complete(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, int64(10), env.productQty(t, p1))
	assert.Len(t, env.transactions(t, p1), 1)

	assert.ErrorIs(t, env.purchase.Complete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestPurchaseCancel_SoloDesdePendienteYSinEfectoEnStock(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Ladrillo", 0, "800.00")
	ctx := context.Background()

	order, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 100}},
	})
	require.NoError(t, err)
	require.NoError(t, env.purchase.Cancel(ctx, order.ID))

	assert.Equal(t, int64(0), env.productQty(t, p1))
	assert.Empty(t, env.transactions(t, p1))

	got, err := env.purchase.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)

	// CANCELLED es terminal.
	assert.ErrorIs(t, env.purchase.Cancel(ctx, order.ID), domain.ErrInvalidStatus)
	assert.ErrorIs(t, env.purchase.Complete(ctx, order.ID), domain.ErrInvalidStatus)
}

func TestPurchaseCancel_CompletadaProhibida(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Teja", 0, "5000.00")
	ctx := context.Background()

	order, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 10}},
	})
	require.NoError(t, err)
	require.NoError(t, env.purchase.Complete(ctx, order.ID))

	assert.ErrorIs(t, env.purchase.Cancel(ctx, order.ID), domain.ErrInvalidStatus)
	assert.Equal(t, int64(10), env.productQty(t, p1))
}

func TestPurchaseDelete_CompletadaEsRegistroPermanente(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Varilla", 0, "22000.00")
	ctx := context.Background()

	order, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 8}},
	})
	require.NoError(t, err)
	require.NoError(t, env.purchase.Complete(ctx, order.ID))

	assert.ErrorIs(t, env.purchase.Delete(ctx, order.ID), domain.ErrInvalidStatus)

	got, err := env.purchase.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestPurchaseDelete_PendienteSeEliminaSinTocarLedger(t *testing.T) {
	env := newOrdersEnv(t)
	supplierID := env.seedSupplier(t, "Proveedor")
	p1 := env.seedProduct(t, "Tubo", 0, "18000.00")
	ctx := context.Background()

	order, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: p1, Quantity: 4}},
	})
	require.NoError(t, err)
	require.NoError(t, env.purchase.Delete(ctx, order.ID))

	got, err := env.purchase.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, env.transactions(t, p1))
}

func TestPurchaseList_FiltraPorProveedor(t *testing.T) {
	env := newOrdersEnv(t)
	s1 := env.seedSupplier(t, "Proveedor A")
	s2 := env.seedSupplier(t, "Proveedor B")
	p1 := env.seedProduct(t, "Malla", 0, "30000.00")
	ctx := context.Background()

	_, err := env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: s1, Items: []dto.OrderItemInput{{ProductID: p1, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = env.purchase.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: s2, Items: []dto.OrderItemInput{{ProductID: p1, Quantity: 2}},
	})
	require.NoError(t, err)

	all, err := env.purchase.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := env.purchase.ListBySupplier(ctx, s1, 20, 0)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, s1, onlyA[0].SupplierID)
}
