package excel_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/excel"
)

func TestExportSales_HojasYFilas(t *testing.T) {
	report := &dto.SalesReportResponse{
		Days: []dto.DailySalesDTO{
			{Date: "2026-03-01", Orders: 2, Revenue: decimal.RequireFromString("150.5")},
			{Date: "2026-03-02", Orders: 1, Revenue: decimal.RequireFromString("40")},
		},
		TotalOrders:  3,
		TotalRevenue: decimal.RequireFromString("190.5"),
	}
	products := []dto.TopProductDTO{{SKU: "LEC-1", ProductName: "Leche entera", Units: 30, Revenue: decimal.NewFromInt(120)}}
	clients := []dto.TopClientDTO{{ClientName: "Tienda La Vaca", Orders: 3, Revenue: decimal.RequireFromString("190.5")}}

	data, err := excel.NewSalesExporter().ExportSales(report, products, clients)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excel.SheetSales, excel.SheetProducts, excel.SheetClients}, f.GetSheetList())

	rows, err := f.GetRows(excel.SheetSales)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Fecha", "Pedidos", "Ingresos"}, rows[0])
	assert.Equal(t, []string{"2026-03-01", "2", "150.5"}, rows[1])
	assert.Equal(t, []string{"Total", "3", "190.5"}, rows[3])

	v, err := f.GetCellValue(excel.SheetProducts, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Leche entera", v)

	v, err = f.GetCellValue(excel.SheetClients, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Tienda La Vaca", v)
}

func TestExportSales_SinDatos(t *testing.T) {
	data, err := excel.NewSalesExporter().ExportSales(&dto.SalesReportResponse{}, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excel.SheetProducts)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
