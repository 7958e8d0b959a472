package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/repository"
)

// StockReportRow una fila del reporte: producto y su stock calculado.
type StockReportRow struct {
	ProductID    string
	Name         string
	Presentation string
	StockKg      decimal.Decimal
}

// StockComputer calcula el stock actual de un producto (lo implementa el
// StockLedger).
type StockComputer interface {
	ComputeStock(ctx context.Context, productID string) (decimal.Decimal, error)
}

// PDFGenerator renderiza el reporte de stock a PDF.
type PDFGenerator interface {
	GenerateStockReport(rows []StockReportRow, generatedAt time.Time) ([]byte, error)
}

// StockReportUseCase genera el reporte de stock del catálogo completo:
// una fila por producto con su stock recalculado del historial.
type StockReportUseCase struct {
	products repository.ProductRepository
	stocks   StockComputer
	pdf      PDFGenerator
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(products repository.ProductRepository, stocks StockComputer, pdf PDFGenerator) *StockReportUseCase {
	return &StockReportUseCase{products: products, stocks: stocks, pdf: pdf}
}

// Generate recorre el catálogo, calcula el stock de cada producto y devuelve
// el PDF. O(productos × movimientos); aceptable para catálogos de este tamaño.
func (uc *StockReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]StockReportRow, 0, len(products))
	for _, p := range products {
		stock, err := uc.stocks.ComputeStock(ctx, p.ProductID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, StockReportRow{
			ProductID:    p.ProductID,
			Name:         p.Name,
			Presentation: p.Presentation,
			StockKg:      stock,
		})
	}
	return uc.pdf.GenerateStockReport(rows, time.Now())
}
