package orders

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de órdenes, productos y ledger atados a esa tx. Cada operación
// de ciclo de vida (crear/completar/cancelar/eliminar) es una sola unidad
// atómica: estado de la orden + stock + entradas del ledger se confirman o
// revierten juntas.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
	) error) error
}
