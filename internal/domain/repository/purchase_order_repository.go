package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	// GetByIDWithItems carga la orden con sus líneas; (nil, nil) si no existe.
	GetByIDWithItems(id string) (*entity.PurchaseOrder, error)
	ListWithItems(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(id, status string, completedDate *time.Time) error
	// Delete elimina la orden y sus líneas (nunca toca el ledger).
	Delete(order *entity.PurchaseOrder) error
	CountByStatus(status string) (int, error)
}
