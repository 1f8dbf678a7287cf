package reports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockReportPDFGenerator puerto del generador PDF del reporte de stock.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(
		ctx context.Context,
		generatedAt time.Time,
		lowStock []*entity.Product,
		recent []*entity.StockTransaction,
		productNames map[string]string,
	) ([]byte, error)
}

// StockReportUseCase arma el reporte de stock en PDF: productos en stock bajo
// y últimas transacciones del ledger.
type StockReportUseCase struct {
	productRepo repository.ProductRepository
	txnRepo     repository.StockTransactionRepository
	generator   StockReportPDFGenerator
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(
	productRepo repository.ProductRepository,
	txnRepo repository.StockTransactionRepository,
	generator StockReportPDFGenerator,
) *StockReportUseCase {
	return &StockReportUseCase{productRepo: productRepo, txnRepo: txnRepo, generator: generator}
}

// Generate consulta stock bajo y transacciones recientes y genera el PDF.
func (uc *StockReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	lowStock, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	recent, err := uc.txnRepo.ListRecent(50)
	if err != nil {
		return nil, err
	}

	// Nombres de producto para las filas de transacciones.
	names := make(map[string]string)
	for _, p := range lowStock {
		names[p.ID] = p.Name
	}
	for _, t := range recent {
		if _, ok := names[t.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(t.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			names[t.ProductID] = p.Name
		}
	}

	return uc.generator.GenerateStockReportPDF(ctx, time.Now(), lowStock, recent, names)
}
