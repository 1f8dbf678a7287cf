package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, order_number, supplier_id, order_date, status, total_amount, notes, completed_date`

// PurchaseOrderRepo persistencia de órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera de la orden. order_number tiene índice único.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, order_number, supplier_id, order_date, status, total_amount, notes, completed_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.SupplierID, order.OrderDate,
		order.Status, order.TotalAmount, order.Notes, order.CompletedDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseOrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// GetByIDWithItems carga la orden con sus líneas; (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByIDWithItems(id string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CompletedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.itemsFor([]string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// ListWithItems lista órdenes con sus líneas, más recientes primero.
func (r *PurchaseOrderRepo) ListWithItems(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	return r.listWithItems(query, limit, offset)
}

// ListBySupplier órdenes de un proveedor con sus líneas.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE supplier_id = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.listWithItems(query, supplierID, limit, offset)
}

func (r *PurchaseOrderRepo) listWithItems(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	var ids []string
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CompletedDate); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.itemsFor(ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}

func (r *PurchaseOrderRepo) itemsFor(orderIDs []string) (map[string][]entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, product_id, quantity, unit_price, total_price
		FROM purchase_order_items WHERE purchase_order_id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	result := make(map[string][]entity.PurchaseOrderItem)
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		result[it.PurchaseOrderID] = append(result[it.PurchaseOrderID], it)
	}
	return result, rows.Err()
}

// UpdateStatus cambia el estado y, si aplica, la fecha de completado.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string, completedDate *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, completed_date = $3 WHERE id = $1`,
		id, status, completedDate,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE.
// El ledger nunca se toca.
func (r *PurchaseOrderRepo) Delete(order *entity.PurchaseOrder) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_orders WHERE id = $1`, order.ID)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

// CountByStatus total de órdenes en un estado (dashboard).
func (r *PurchaseOrderRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM purchase_orders WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders: %w", err)
	}
	return n, nil
}
