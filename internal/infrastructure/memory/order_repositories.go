package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// PurchaseOrderRepo repositorio de órdenes de compra en memoria.
type PurchaseOrderRepo struct {
	store *Store
}

func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{store: store}
}

func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.purchaseOrders {
		if o.OrderNumber == order.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.store.purchaseOrders[order.ID] = clonePurchaseOrder(order)
	return nil
}

func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.purchaseOrders[item.PurchaseOrderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Items = append(o.Items, *item)
	return nil
}

func (r *PurchaseOrderRepo) GetByIDWithItems(id string) (*entity.PurchaseOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	return clonePurchaseOrder(o), nil
}

func (r *PurchaseOrderRepo) ListWithItems(limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.PurchaseOrder, 0, len(r.store.purchaseOrders))
	for _, o := range r.store.purchaseOrders {
		all = append(all, clonePurchaseOrder(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderDate.After(all[j].OrderDate) })
	return page(all, limit, offset), nil
}

func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.PurchaseOrder
	for _, o := range r.store.purchaseOrders {
		if o.SupplierID == supplierID {
			list = append(list, clonePurchaseOrder(o))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderDate.After(list[j].OrderDate) })
	return page(list, limit, offset), nil
}

func (r *PurchaseOrderRepo) UpdateStatus(id, status string, completedDate *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.purchaseOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.CompletedDate = completedDate
	return nil
}

func (r *PurchaseOrderRepo) Delete(order *entity.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.purchaseOrders, order.ID)
	return nil
}

func (r *PurchaseOrderRepo) CountByStatus(status string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, o := range r.store.purchaseOrders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

// SalesOrderRepo repositorio de órdenes de venta en memoria.
type SalesOrderRepo struct {
	store *Store
}

func NewSalesOrderRepository(store *Store) *SalesOrderRepo {
	return &SalesOrderRepo{store: store}
}

func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.salesOrders {
		if o.OrderNumber == order.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.store.salesOrders[order.ID] = cloneSalesOrder(order)
	return nil
}

func (r *SalesOrderRepo) CreateItem(item *entity.SalesOrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.salesOrders[item.SalesOrderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Items = append(o.Items, *item)
	return nil
}

func (r *SalesOrderRepo) GetByIDWithItems(id string) (*entity.SalesOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.salesOrders[id]
	if !ok {
		return nil, nil
	}
	return cloneSalesOrder(o), nil
}

func (r *SalesOrderRepo) ListWithItems(limit, offset int) ([]*entity.SalesOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.SalesOrder, 0, len(r.store.salesOrders))
	for _, o := range r.store.salesOrders {
		all = append(all, cloneSalesOrder(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderDate.After(all[j].OrderDate) })
	return page(all, limit, offset), nil
}

func (r *SalesOrderRepo) UpdateStatus(id, status string, completedDate *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.salesOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.CompletedDate = completedDate
	return nil
}

func (r *SalesOrderRepo) Delete(order *entity.SalesOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.salesOrders, order.ID)
	return nil
}

func (r *SalesOrderRepo) CountByStatus(status string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, o := range r.store.salesOrders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}
