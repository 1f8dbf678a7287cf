// Package orders implementa las máquinas de estado de cumplimiento de órdenes
// de compra y de venta. Son dos flujos concretos y separados que comparten la
// primitiva de append al ledger (stock.Append) y el mismo tipo de errores de
// dominio; la asimetría PENDING/COMPLETED/CANCELLED queda explícita en cada
// flujo en lugar de esconderse en polimorfismo.
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

// PurchaseUseCase ciclo de vida de órdenes de compra:
// PENDING -> COMPLETED (suma stock) | PENDING -> CANCELLED (sin stock).
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		log:          log,
	}
}

// Create crea la orden PENDING con número generado, precio congelado por línea
// (precio del producto si la línea no trae uno) y TotalAmount = suma de
// líneas. Las líneas inválidas (sin producto o cantidad <= 0) se descartan;
// si no queda ninguna retorna ErrEmptyOrder. Crear nunca mueve stock.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		OrderNumber: NewOrderNumber("PO", now),
		SupplierID:  in.SupplierID,
		OrderDate:   now,
		Status:      entity.OrderStatusPending,
		Notes:       in.Notes,
	}

	total := decimal.Zero
	for i := range items {
		items[i].PurchaseOrderID = order.ID
		total = total.Add(items[i].TotalPrice)
	}
	order.TotalAmount = total
	order.Items = items

	err = uc.txRunner.RunOrders(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockTransactionRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		_ repository.SalesOrderRepository,
	) error {
		if err := purchaseRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := purchaseRepo.CreateItem(&order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_number", order.OrderNumber).Msg("orden de compra creada")
	return toPurchaseOrderResponse(order), nil
}

// buildItems filtra líneas inválidas, congela precios y calcula totales.
func (uc *PurchaseUseCase) buildItems(inputs []dto.OrderItemInput) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
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
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unitPrice := in.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.UnitPrice
		}
		items = append(items, entity.PurchaseOrderItem{
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

// Complete recibe la mercancía: por cada línea agrega una entrada PURCHASE al
// ledger (+Quantity) y marca la orden COMPLETED, todo en una transacción. Si
// cualquier append falla, nada queda aplicado y la orden sigue PENDING.
// Retorna ErrNotFound si no existe y ErrInvalidStatus si no está PENDING.
func (uc *PurchaseUseCase) Complete(ctx context.Context, id string) error {
	var orderNumber string
	err := uc.txRunner.RunOrders(ctx, func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		_ repository.SalesOrderRepository,
	) error {
		order, err := purchaseRepo.GetByIDWithItems(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrInvalidStatus
		}

		now := time.Now()
		for _, item := range order.Items {
			if _, err := stock.Append(productRepo, txnRepo, stock.AppendInput{
				ProductID: item.ProductID,
				Type:      entity.TransactionTypePurchase,
				Delta:     item.Quantity,
				Reference: "PO: " + order.OrderNumber,
				Notes:     "Orden de compra completada",
				Now:       now,
			}); err != nil {
				return err
			}
		}
		orderNumber = order.OrderNumber
		return purchaseRepo.UpdateStatus(id, entity.OrderStatusCompleted, &now)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_number", orderNumber).Msg("orden de compra completada")
	return nil
}

// Cancel solo desde PENDING; no toca stock (una orden de compra pendiente
// nunca lo afectó).
func (uc *PurchaseUseCase) Cancel(ctx context.Context, id string) error {
	var orderNumber string
	err := uc.txRunner.RunOrders(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockTransactionRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		_ repository.SalesOrderRepository,
	) error {
		order, err := purchaseRepo.GetByIDWithItems(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrInvalidStatus
		}
		orderNumber = order.OrderNumber
		return purchaseRepo.UpdateStatus(id, entity.OrderStatusCancelled, nil)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_number", orderNumber).Msg("orden de compra cancelada")
	return nil
}

// Delete elimina la orden y sus líneas; prohibido si está COMPLETED (las
// órdenes completadas son registro histórico). Nunca toca el ledger.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	var orderNumber string
	err := uc.txRunner.RunOrders(ctx, func(
		_ repository.ProductRepository,
		_ repository.StockTransactionRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		_ repository.SalesOrderRepository,
	) error {
		order, err := purchaseRepo.GetByIDWithItems(id)
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
		return purchaseRepo.Delete(order)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_number", orderNumber).Msg("orden de compra eliminada")
	return nil
}

// GetByID obtiene la orden con líneas; (nil, nil) si no existe.
func (uc *PurchaseUseCase) GetByID(_ context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.purchaseRepo.GetByIDWithItems(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toPurchaseOrderResponse(order), nil
}

// List lista órdenes de compra, más recientes primero.
func (uc *PurchaseUseCase) List(_ context.Context, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	list, err := uc.purchaseRepo.ListWithItems(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseOrderResponse(o))
	}
	return out, nil
}

// ListBySupplier órdenes de un proveedor.
func (uc *PurchaseUseCase) ListBySupplier(_ context.Context, supplierID string, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	list, err := uc.purchaseRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseOrderResponse(o))
	}
	return out, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
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
	return &dto.PurchaseOrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		SupplierID:    o.SupplierID,
		OrderDate:     o.OrderDate,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		CompletedDate: o.CompletedDate,
		Items:         items,
	}
}
