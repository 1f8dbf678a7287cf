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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `id, order_number, customer_name, customer_email, customer_phone, order_date, status, total_amount, notes, completed_date`

// SalesOrderRepo persistencia de órdenes de venta sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador para órdenes de venta.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create inserta la cabecera de la orden. order_number tiene índice único.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, order_number, customer_name, customer_email, customer_phone, order_date, status, total_amount, notes, completed_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.OrderDate, order.Status, order.TotalAmount, order.Notes, order.CompletedDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la orden.
func (r *SalesOrderRepo) CreateItem(item *entity.SalesOrderItem) error {
	query := `
		INSERT INTO sales_order_items (id, sales_order_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SalesOrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sales order item: %w", err)
	}
	return nil
}

// GetByIDWithItems carga la orden con sus líneas; (nil, nil) si no existe.
func (r *SalesOrderRepo) GetByIDWithItems(id string) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CompletedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	items, err := r.itemsFor([]string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// ListWithItems lista órdenes con sus líneas, más recientes primero.
func (r *SalesOrderRepo) ListWithItems(limit, offset int) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	var ids []string
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
			&o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CompletedDate); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
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

func (r *SalesOrderRepo) itemsFor(orderIDs []string) (map[string][]entity.SalesOrderItem, error) {
	query := `
		SELECT id, sales_order_id, product_id, quantity, unit_price, total_price
		FROM sales_order_items WHERE sales_order_id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()
	result := make(map[string][]entity.SalesOrderItem)
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.SalesOrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		result[it.SalesOrderID] = append(result[it.SalesOrderID], it)
	}
	return result, rows.Err()
}

// UpdateStatus cambia el estado y, si aplica, la fecha de completado.
func (r *SalesOrderRepo) UpdateStatus(id, status string, completedDate *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales_orders SET status = $2, completed_date = $3 WHERE id = $1`,
		id, status, completedDate,
	)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE.
func (r *SalesOrderRepo) Delete(order *entity.SalesOrder) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales_orders WHERE id = $1`, order.ID)
	if err != nil {
		return fmt.Errorf("delete sales order: %w", err)
	}
	return nil
}

// CountByStatus total de órdenes en un estado (dashboard).
func (r *SalesOrderRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM sales_orders WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return n, nil
}
