// Package pdf implementa la generación del Reporte de Stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Stock + fecha de generación             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Productos en stock bajo (SKU | Nombre | Stock | Min)│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Últimos movimientos (Fecha | Producto | Tipo |      │
//	│         Cantidad | Saldo | Referencia)                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ reports.StockReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reports.StockReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReportPDF(
	_ context.Context,
	generatedAt time.Time,
	lowStock []*entity.Product,
	recent []*entity.StockTransaction,
	productNames map[string]string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Sección: stock bajo
	m.AddRows(sectionTitleRow("PRODUCTOS EN STOCK BAJO"))
	if len(lowStock) == 0 {
		m.AddRows(emptyRow("Sin productos por debajo de su umbral mínimo."))
	} else {
		m.AddRows(lowStockHeaderRow())
		for _, r := range lowStockRows(lowStock) {
			m.AddRows(r)
		}
	}

	// Sección: movimientos recientes
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("ÚLTIMOS MOVIMIENTOS DE STOCK"))
	if len(recent) == 0 {
		m.AddRows(emptyRow("Sin movimientos registrados."))
	} else {
		m.AddRows(transactionsHeaderRow())
		for _, r := range transactionRows(recent, productNames) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func lowStockHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("SKU", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Stock", 2, align.Right),
		h("Mínimo", 2, align.Right),
	)
}

func lowStockRows(products []*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		stockColor := colorGray
		if p.OutOfStock() {
			stockColor = colorRed
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(p.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", p.QuantityInStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: stockColor},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", p.MinimumStockLevel),
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray},
			)),
		))
	}
	return result
}

func transactionsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Tipo", 2, align.Center),
		h("Cantidad", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Referencia", 3, align.Left),
	)
}

func transactionRows(txns []*entity.StockTransaction, names map[string]string) []core.Row {
	result := make([]core.Row, 0, len(txns))
	for _, t := range txns {
		name := names[t.ProductID]
		if name == "" {
			name = t.ProductID
		}
		qtyColor := colorGray
		if t.Quantity < 0 {
			qtyColor = colorRed
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				t.TransactionDate.Format("02/01/2006 15:04"),
				props.Text{Size: 7, Top: 1},
			)),
			col.New(3).Add(text.New(name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(t.Type, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(
				fmt.Sprintf("%+d", t.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: qtyColor},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", t.BalanceAfter),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(t.Reference, props.Text{Size: 7, Top: 1, Color: colorGray})),
		))
	}
	return result
}
