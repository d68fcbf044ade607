package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/herd"
)

// HerdHandler vacas y registros de ordeño, salud y alimentación.
type HerdHandler struct {
	uc *herd.UseCase
}

// NewHerdHandler construye el handler. uc puede ser nil si el módulo está deshabilitado;
// en ese caso RequireModule corta la petición antes de llegar aquí.
func NewHerdHandler(uc *herd.UseCase) *HerdHandler {
	return &HerdHandler{uc: uc}
}

// CreateCow godoc
// @Summary      Registrar vaca
// @Tags         herd
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCowRequest  true  "Vaca"
// @Success      201   {object}  dto.CowResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /herd/cows [post]
func (h *HerdHandler) CreateCow(c *fiber.Ctx) error {
	var in dto.CreateCowRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateCow(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, out)
}

// GetCow godoc
// @Summary      Obtener vaca
// @Tags         herd
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vaca"
// @Success      200  {object}  dto.CowResponse
// @Router       /herd/cows/{id} [get]
func (h *HerdHandler) GetCow(c *fiber.Ctx) error {
	out, err := h.uc.GetCow(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// ListCows godoc
// @Summary      Listar vacas
// @Tags         herd
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        search  query  string  false  "Arete o nombre"
// @Success      200     {object}  dto.CowListResponse
// @Router       /herd/cows [get]
func (h *HerdHandler) ListCows(c *fiber.Ctx) error {
	var in dto.CowFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListCows(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// UpdateCow godoc
// @Summary      Actualizar vaca
// @Tags         herd
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la vaca"
// @Param        body  body  dto.UpdateCowRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CowResponse
// @Router       /herd/cows/{id} [put]
func (h *HerdHandler) UpdateCow(c *fiber.Ctx) error {
	var in dto.UpdateCowRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateCow(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// DeleteCow godoc
// @Summary      Eliminar vaca
// @Tags         herd
// @Security     Bearer
// @Param        id   path  string  true  "ID de la vaca"
// @Success      204
// @Router       /herd/cows/{id} [delete]
func (h *HerdHandler) DeleteCow(c *fiber.Ctx) error {
	if err := h.uc.DeleteCow(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateMilkRecord godoc
// @Summary      Registrar ordeño
// @Description  Un registro por vaca, fecha y turno.
// @Tags         herd
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMilkRecordRequest  true  "Ordeño"
// @Success      201   {object}  dto.MilkRecordResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /herd/milk [post]
func (h *HerdHandler) CreateMilkRecord(c *fiber.Ctx) error {
	var in dto.CreateMilkRecordRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateMilkRecord(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, out)
}

// ListMilkRecords godoc
// @Summary      Listar ordeños
// @Tags         herd
// @Security     Bearer
// @Produce      json
// @Param        cowId  query  string  false  "Vaca"
// @Param        from   query  string  false  "Desde"
// @Param        to     query  string  false  "Hasta"
// @Success      200    {array}  dto.MilkRecordResponse
// @Router       /herd/milk [get]
func (h *HerdHandler) ListMilkRecords(c *fiber.Ctx) error {
	var in dto.HerdRecordFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListMilkRecords(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// MilkSummary godoc
// @Summary      Producción diaria de leche
// @Tags         herd
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde"
// @Param        to    query  string  true  "Hasta"
// @Success      200   {array}  dto.MilkSummaryDTO
// @Router       /herd/milk/summary [get]
func (h *HerdHandler) MilkSummary(c *fiber.Ctx) error {
	out, err := h.uc.MilkSummary(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// CreateHealthRecord godoc
// @Summary      Registrar evento sanitario
// @Tags         herd
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHealthRecordRequest  true  "Evento"
// @Success      201   {object}  dto.HealthRecordResponse
// @Router       /herd/health [post]
func (h *HerdHandler) CreateHealthRecord(c *fiber.Ctx) error {
	var in dto.CreateHealthRecordRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateHealthRecord(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, out)
}

// UpdateHealthRecord godoc
// @Summary      Actualizar evento sanitario
// @Tags         herd
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del registro"
// @Param        body  body  dto.UpdateHealthRecordRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.HealthRecordResponse
// @Router       /herd/health/{id} [put]
func (h *HerdHandler) UpdateHealthRecord(c *fiber.Ctx) error {
	var in dto.UpdateHealthRecordRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateHealthRecord(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// ListHealthRecords godoc
// @Summary      Listar eventos sanitarios
// @Tags         herd
// @Security     Bearer
// @Produce      json
// @Param        cowId  query  string  false  "Vaca"
// @Success      200    {array}  dto.HealthRecordResponse
// @Router       /herd/health [get]
func (h *HerdHandler) ListHealthRecords(c *fiber.Ctx) error {
	var in dto.HerdRecordFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListHealthRecords(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// CreateFeedRecord godoc
// @Summary      Registrar alimentación
// @Description  Sin cowId el registro aplica a todo el hato.
// @Tags         herd
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeedRecordRequest  true  "Alimentación"
// @Success      201   {object}  dto.FeedRecordResponse
// @Router       /herd/feed [post]
func (h *HerdHandler) CreateFeedRecord(c *fiber.Ctx) error {
	var in dto.CreateFeedRecordRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateFeedRecord(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, out)
}

// ListFeedRecords godoc
// @Summary      Listar alimentación
// @Tags         herd
// @Security     Bearer
// @Produce      json
// @Param        cowId  query  string  false  "Vaca"
// @Success      200    {array}  dto.FeedRecordResponse
// @Router       /herd/feed [get]
func (h *HerdHandler) ListFeedRecords(c *fiber.Ctx) error {
	var in dto.HerdRecordFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListFeedRecords(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}
