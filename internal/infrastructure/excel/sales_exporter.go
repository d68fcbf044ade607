// Package excel genera el libro de ventas descargable (xlsx).
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/lacteos-api/internal/application/analytics"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
)

// Nombres de hoja del libro exportado.
const (
	SheetSales    = "Ventas"
	SheetProducts = "Productos"
	SheetClients  = "Clientes"
)

var _ analytics.SalesReportExporter = (*SalesExporter)(nil)

// SalesExporter arma un libro con una hoja por reporte.
type SalesExporter struct{}

// NewSalesExporter construye el exportador.
func NewSalesExporter() *SalesExporter { return &SalesExporter{} }

// ExportSales ventas diarias, top productos y top clientes del mismo rango.
func (e *SalesExporter) ExportSales(report *dto.SalesReportResponse, products []dto.TopProductDTO, clients []dto.TopClientDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSales); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetProducts, SheetClients} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	sales := [][]interface{}{{"Fecha", "Pedidos", "Ingresos"}}
	for _, d := range report.Days {
		sales = append(sales, []interface{}{d.Date, d.Orders, d.Revenue.InexactFloat64()})
	}
	sales = append(sales, []interface{}{"Total", report.TotalOrders, report.TotalRevenue.InexactFloat64()})
	if err := writeRows(f, SheetSales, sales); err != nil {
		return nil, err
	}

	prod := [][]interface{}{{"SKU", "Producto", "Unidades", "Ingresos"}}
	for _, p := range products {
		prod = append(prod, []interface{}{p.SKU, p.ProductName, p.Units, p.Revenue.InexactFloat64()})
	}
	if err := writeRows(f, SheetProducts, prod); err != nil {
		return nil, err
	}

	cli := [][]interface{}{{"Cliente", "Pedidos", "Ingresos"}}
	for _, c := range clients {
		cli = append(cli, []interface{}{c.ClientName, c.Orders, c.Revenue.InexactFloat64()})
	}
	if err := writeRows(f, SheetClients, cli); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("hoja %s fila %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
