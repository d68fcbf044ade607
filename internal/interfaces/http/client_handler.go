package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/application/orders"
	"github.com/jhoicas/lacteos-api/internal/application/usecase"
)

// ClientHandler CRUD de clientes y sus pedidos.
type ClientHandler struct {
	uc     *usecase.ClientUseCase
	orders *orders.UseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase, ordersUC *orders.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc, orders: ordersUC}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "cliente no encontrado")
	}
	return respondOK(c, out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "Tipo de cliente"
// @Param        search  query  string  false  "Nombre, contacto o email"
// @Success      200     {object}  dto.ClientListResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var in dto.ClientFilterRequest
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
// @Summary      Actualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ClientResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "cliente no encontrado")
	}
	return respondOK(c, out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         clients
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Orders godoc
// @Summary      Pedidos de un cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del cliente"
// @Param        status  query  string  false  "Estado"
// @Success      200     {object}  dto.OrderListResponse
// @Router       /clients/{id}/orders [get]
func (h *ClientHandler) Orders(c *fiber.Ctx) error {
	id := c.Params("id")
	client, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "cliente no encontrado")
	}
	var in dto.OrderFilterRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	in.ClientID = id
	out, err := h.orders.ListOrders(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}
