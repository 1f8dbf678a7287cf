package usecase

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// DashboardUseCase resumen para la vista principal: conteos de productos,
// stock bajo, órdenes pendientes y últimas transacciones del ledger.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseOrderRepository
	salesRepo    repository.SalesOrderRepository
	txnRepo      repository.StockTransactionRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	salesRepo repository.SalesOrderRepository,
	txnRepo repository.StockTransactionRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		salesRepo:    salesRepo,
		txnRepo:      txnRepo,
	}
}

// Summary arma el resumen. Consultas de solo lectura, sin transacción.
func (uc *DashboardUseCase) Summary() (*dto.DashboardResponse, error) {
	totalProducts, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.CountLowStock()
	if err != nil {
		return nil, err
	}
	pendingPO, err := uc.purchaseRepo.CountByStatus(entity.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	pendingSO, err := uc.salesRepo.CountByStatus(entity.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	recent, err := uc.txnRepo.ListRecent(10)
	if err != nil {
		return nil, err
	}

	txns := make([]dto.StockTransactionResponse, 0, len(recent))
	for _, t := range recent {
		txns = append(txns, dto.StockTransactionResponse{
			ID:              t.ID,
			ProductID:       t.ProductID,
			Type:            t.Type,
			Quantity:        t.Quantity,
			BalanceAfter:    t.BalanceAfter,
			Reference:       t.Reference,
			Notes:           t.Notes,
			TransactionDate: t.TransactionDate,
		})
	}
	return &dto.DashboardResponse{
		TotalProducts:         totalProducts,
		LowStockProducts:      lowStock,
		PendingPurchaseOrders: pendingPO,
		PendingSalesOrders:    pendingSO,
		RecentTransactions:    txns,
	}, nil
}
