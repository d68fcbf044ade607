package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/lacteos-api/internal/application/analytics"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler tablero y reportes de ventas.
type DashboardHandler struct {
	dashboard *appanalytics.DashboardUseCase
	reports   *appanalytics.ReportsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appanalytics.DashboardUseCase, reports *appanalytics.ReportsUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports}
}

// Stats godoc
// @Summary      Indicadores del tablero
// @Description  Incluye tamaño del hato y litros del día cuando el módulo de hato está activo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.dashboard.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// Sales godoc
// @Summary      Ventas diarias
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to    query  string  false  "Hasta (AAAA-MM-DD)"
// @Success      200   {object}  dto.SalesReportResponse
// @Router       /reports/sales [get]
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.reports.Sales(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde"
// @Param        to     query  string  false  "Hasta"
// @Param        limit  query  int     false  "Máximo de filas"
// @Success      200    {array}  dto.TopProductDTO
// @Router       /reports/products [get]
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.reports.TopProducts(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// TopClients godoc
// @Summary      Mejores clientes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde"
// @Param        to     query  string  false  "Hasta"
// @Param        limit  query  int     false  "Máximo de filas"
// @Success      200    {array}  dto.TopClientDTO
// @Router       /reports/clients [get]
func (h *DashboardHandler) TopClients(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.reports.TopClients(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// ExportSales godoc
// @Summary      Exportar ventas a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta"
// @Success      200   {file}  binary
// @Router       /reports/sales/export [get]
func (h *DashboardHandler) ExportSales(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	data, filename, err := h.reports.ExportSales(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, xlsxContentType, filename, data)
}
