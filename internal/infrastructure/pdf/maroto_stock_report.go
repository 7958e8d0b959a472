// Package pdf implementa la generación del reporte de stock en PDF
// usando Maroto v2: una tabla con el stock actual (kg) de cada producto
// del catálogo, recalculado del historial de movimientos.
package pdf

import (
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

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoStockReport implementa report.PDFGenerator usando Maroto v2.
type MarotoStockReport struct{}

// NewMarotoStockReport construye el generador.
func NewMarotoStockReport() *MarotoStockReport { return &MarotoStockReport{} }

// GenerateStockReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoStockReport) GenerateStockReport(rows []report.StockReportRow, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación + total de productos (der).
func headerRow(generatedAt time.Time, total int) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock calculado del historial de movimientos (kg)", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Productos: %d", total), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Presentación", 3, align.Left),
		h("Stock (kg)", 2, align.Right),
	)
}

// detailRow: una fila por producto.
func detailRow(r report.StockReportRow) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(r.ProductID, props.Text{Size: 8, Top: 1})),
		col.New(5).Add(text.New(r.Name, props.Text{Size: 8, Top: 1})),
		col.New(3).Add(text.New(r.Presentation, props.Text{Size: 8, Top: 1, Color: colorGray})),
		col.New(2).Add(text.New(r.StockKg.StringFixed(2), props.Text{
			Size: 8, Align: align.Right, Top: 1,
		})),
	)
}
