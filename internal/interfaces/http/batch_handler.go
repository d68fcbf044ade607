package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lacteos-api/internal/application/batches"
	"github.com/jhoicas/lacteos-api/internal/application/dto"
)

// BatchHandler lotes de producción.
type BatchHandler struct {
	uc *batches.UseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *batches.UseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lote
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Lote"
// @Success      201   {object}  dto.BatchResponse
// @Router       /batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID godoc
// @Summary      Obtener lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Router       /batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Success      200     {object}  dto.BatchListResponse
// @Router       /batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	var in dto.BatchFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// Update godoc
// @Summary      Actualizar lote
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.UpdateBatchRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.BatchResponse
// @Router       /batches/{id} [put]
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del lote
// @Description  Completar un lote ligado a producto suma su cantidad al stock.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del lote"
// @Param        body  body  dto.UpdateBatchStatusRequest  true  "Estado"
// @Success      200   {object}  dto.BatchResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /batches/{id}/status [patch]
func (h *BatchHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBatchStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// QualityCheck godoc
// @Summary      Registrar control de calidad
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del lote"
// @Param        body  body  dto.QualityCheckRequest  true  "Mediciones"
// @Success      200   {object}  dto.BatchResponse
// @Router       /batches/{id}/quality-check [patch]
func (h *BatchHandler) QualityCheck(c *fiber.Ctx) error {
	var in dto.QualityCheckRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordQualityCheck(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}
