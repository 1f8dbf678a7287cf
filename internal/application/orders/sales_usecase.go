package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// SalesUseCase ciclo de vida de órdenes de venta:
// PENDING -> COMPLETED (resta stock) | PENDING -> CANCELLED, y además
// COMPLETED -> CANCELLED que revierte la deducción con entradas RETURN.
type SalesUseCase struct {
	txRunner    TxRunner
	salesRepo   repository.SalesOrderRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(
	txRunner TxRunner,
	salesRepo repository.SalesOrderRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:    txRunner,
		salesRepo:   salesRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// Create valida existencia y disponibilidad de cada producto (la primera
// línea que falla aborta con nombre/disponible/solicitado y sin efectos),
// congela precios, calcula totales y persiste la orden PENDING. Crear no
// mueve stock: la deducción ocurre solo al completar.
func (uc *SalesUseCase) Create(ctx context.Context, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:            uuid.New().String(),
		OrderNumber:   NewOrderNumber("SO", now),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		OrderDate:     now,
		Status:        entity.OrderStatusPending,
		Notes:         in.Notes,
	}

	total := decimal.Zero
	for i := range items {
		items[i].SalesOrderID = order.ID
		total = total.Add(items[i].TotalPrice)
	}
	order.TotalAmount = total
	order.Items = items

	err = uc.txRunner.RunOrders(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockTransactionRepository,
		_ repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
	) error {
		if err := salesRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := salesRepo.CreateItem(&order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_number", order.OrderNumber).Msg("orden de venta creada")
	return toSalesOrderResponse(order), nil
}

// buildItems filtra líneas inválidas, valida disponibilidad y congela precios.
func (uc *SalesUseCase) buildItems(inputs []dto.OrderItemInput) ([]entity.SalesOrderItem, error) {
	var items []entity.SalesOrderItem
	for _, in := range inputs {
		if !in.Valid() {
			continue
		}
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.QuantityInStock < in.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.QuantityInStock,
				Requested:   in.Quantity,
			}
		}
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unitPrice := in.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.UnitPrice
		}
		items = append(items, entity.SalesOrderItem{
			ID:         uuid.New().String(),
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: decimal.NewFromInt(in.Quantity).Mul(unitPrice),
		})
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	return items, nil
}

// Complete despacha la orden: re-valida disponibilidad bajo bloqueo de fila
// (el stock pudo cambiar desde la creación) y por cada línea agrega una
// entrada SALE (-Quantity) al ledger, luego marca COMPLETED, todo en una
// transacción. Si alguna línea ya no tiene stock, nada se deduce y la orden
// sigue PENDING.
func (uc *SalesUseCase) Complete(ctx context.Context, id string) error {
	var orderNumber string
	err := uc.txRunner.RunOrders(ctx, func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
	) error {
		order, err := salesRepo.GetByIDWithItems(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrInvalidStatus
		}

		// Append bloquea la fila del producto y rechaza saldos negativos: la
		// re-validación y la deducción son un solo paso serializado. Dos
		// completados concurrentes de la última unidad no pueden pasar ambos.
		now := time.Now()
		for _, item := range order.Items {
			if _, err := stock.Append(productRepo, txnRepo, stock.AppendInput{
				ProductID: item.ProductID,
				Type:      entity.TransactionTypeSale,
				Delta:     -item.Quantity,
				Reference: "SO: " + order.OrderNumber,
				Notes:     "Orden de venta completada",
				Now:       now,
			}); err != nil {
				return err
			}
		}
		orderNumber = order.OrderNumber
		return salesRepo.UpdateStatus(id, entity.OrderStatusCompleted, &now)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_number", orderNumber).Msg("orden de venta completada")
	return nil
}

// Cancel:
//   - PENDING: pasa a CANCELLED sin tocar stock.
//   - COMPLETED: agrega una entrada RETURN (+Quantity) por línea que revierte
//     la deducción y pasa a CANCELLED. Completar y luego cancelar deja el
//     stock idéntico a nunca haber completado.
//   - CANCELLED o inexistente: falla reportada (ErrInvalidStatus/ErrNotFound).
func (uc *SalesUseCase) Cancel(ctx context.Context, id string) error {
	var orderNumber string
	err := uc.txRunner.RunOrders(ctx, func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
	) error {
		order, err := salesRepo.GetByIDWithItems(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled {
			return domain.ErrInvalidStatus
		}

		if order.Status == entity.OrderStatusCompleted {
			now := time.Now()
			for _, item := range order.Items {
				if _, err := stock.Append(productRepo, txnRepo, stock.AppendInput{
					ProductID: item.ProductID,
					Type:      entity.TransactionTypeReturn,
					Delta:     item.Quantity,
					Reference: "SO: " + order.OrderNumber + " (Cancelled)",
					Notes:     "Stock devuelto por cancelación de la orden",
					Now:       now,
				}); err != nil {
					return err
				}
			}
		}
		orderNumber = order.OrderNumber
		return salesRepo.UpdateStatus(id, entity.OrderStatusCancelled, order.CompletedDate)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_number", orderNumber).Msg("orden de venta cancelada")
	return nil
}

// Delete elimina la orden y sus líneas; prohibido si está COMPLETED. Las
// entradas del ledger de una cancelación previa sobreviven a la orden
// (auditoría).
func (uc *SalesUseCase) Delete(ctx context.Context, id string) error {
	var orderNumber string
	err := uc.txRunner.RunOrders(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockTransactionRepository,
		_ repository.PurchaseOrderRepository,
		salesRepo repository.SalesOrderRepository,
	) error {
		order, err := salesRepo.GetByIDWithItems(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCompleted {
			return domain.ErrInvalidStatus
		}
		orderNumber = order.OrderNumber
		return salesRepo.Delete(order)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_number", orderNumber).Msg("orden de venta eliminada")
	return nil
}

// GetByID obtiene la orden con líneas; (nil, nil) si no existe.
func (uc *SalesUseCase) GetByID(_ context.Context, id string) (*dto.SalesOrderResponse, error) {
	order, err := uc.salesRepo.GetByIDWithItems(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toSalesOrderResponse(order), nil
}

// List lista órdenes de venta, más recientes primero.
func (uc *SalesUseCase) List(_ context.Context, limit, offset int) ([]*dto.SalesOrderResponse, error) {
	list, err := uc.salesRepo.ListWithItems(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toSalesOrderResponse(o))
	}
	return out, nil
}

func toSalesOrderResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return &dto.SalesOrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		OrderDate:     o.OrderDate,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		CompletedDate: o.CompletedDate,
		Items:         items,
	}
}
