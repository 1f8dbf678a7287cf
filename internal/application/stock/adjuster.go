package stock

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Referencias de los ajustes manuales en el ledger.
const (
	refManualAddition = "Manual Stock Addition"
	refManualRemoval  = "Manual Stock Removal"
)

// AdjusterUseCase ajustes manuales de stock, independientes de órdenes:
// correcciones y carga inicial. Delegan la mutación real en Append con
// tipo ADJUSTMENT.
type AdjusterUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewAdjusterUseCase construye el caso de uso.
func NewAdjusterUseCase(txRunner TxRunner, log *logger.Logger) *AdjusterUseCase {
	return &AdjusterUseCase{txRunner: txRunner, log: log}
}

// AddStock suma qty unidades al producto. qty debe ser > 0.
func (uc *AdjusterUseCase) AddStock(ctx context.Context, productID string, qty int64, notes string) error {
	if productID == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		_, err := Append(productRepo, txnRepo, AppendInput{
			ProductID: productID,
			Type:      entity.TransactionTypeAdjustment,
			Delta:     qty,
			Reference: refManualAddition,
			Notes:     notes,
			Now:       time.Now(),
		})
		return err
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", productID).Int64("quantity", qty).Msg("stock agregado manualmente")
	return nil
}

// RemoveStock resta qty unidades al producto. Falla con InsufficientStockError
// si qty supera el stock actual; eso es un resultado de negocio esperado, no
// un error fatal.
func (uc *AdjusterUseCase) RemoveStock(ctx context.Context, productID string, qty int64, notes string) error {
	if productID == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		_, err := Append(productRepo, txnRepo, AppendInput{
			ProductID: productID,
			Type:      entity.TransactionTypeAdjustment,
			Delta:     -qty,
			Reference: refManualRemoval,
			Notes:     notes,
			Now:       time.Now(),
		})
		return err
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", productID).Int64("quantity", qty).Msg("stock retirado manualmente")
	return nil
}

// AdjustStock despacha según el signo: positivo agrega, negativo retira,
// cero no hace nada.
func (uc *AdjusterUseCase) AdjustStock(ctx context.Context, productID string, qty int64, notes string) error {
	switch {
	case qty > 0:
		return uc.AddStock(ctx, productID, qty, notes)
	case qty < 0:
		return uc.RemoveStock(ctx, productID, -qty, notes)
	default:
		return nil
	}
}
