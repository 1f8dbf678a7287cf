package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SalesOrderRepository puerto de persistencia para órdenes de venta.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	CreateItem(item *entity.SalesOrderItem) error
	GetByIDWithItems(id string) (*entity.SalesOrder, error)
	ListWithItems(limit, offset int) ([]*entity.SalesOrder, error)
	UpdateStatus(id, status string, completedDate *time.Time) error
	Delete(order *entity.SalesOrder) error
	CountByStatus(status string) (int, error)
}
