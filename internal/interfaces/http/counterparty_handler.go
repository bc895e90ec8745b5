package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// CounterpartyHandler maneja las peticiones HTTP para terceros (protegido).
type CounterpartyHandler struct {
	uc *usecase.CounterpartyUseCase
}

// NewCounterpartyHandler construye el handler.
func NewCounterpartyHandler(uc *usecase.CounterpartyUseCase) *CounterpartyHandler {
	return &CounterpartyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tercero (cliente o proveedor)
// @Tags         counterparties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCounterpartyRequest  true  "Datos del tercero"
// @Success      201   {object}  dto.CounterpartyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/counterparties [post]
func (h *CounterpartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCounterpartyRequest
	if resp := parseAndValidate(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tercero por ID
// @Tags         counterparties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tercero"
// @Success      200  {object}  dto.CounterpartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counterparties/{id} [get]
func (h *CounterpartyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tercero
// @Tags         counterparties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tercero"
// @Param        body  body  dto.UpdateCounterpartyRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CounterpartyResponse
// @Router       /api/counterparties/{id} [put]
func (h *CounterpartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCounterpartyRequest
	if resp := parseAndValidate(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar terceros por rol
// @Tags         counterparties
// @Security     Bearer
// @Produce      json
// @Param        role  query  string  true  "CUSTOMER o SUPPLIER"
// @Success      200   {array}  dto.CounterpartyResponse
// @Router       /api/counterparties [get]
func (h *CounterpartyHandler) List(c *fiber.Ctx) error {
	role := c.Query("role", entity.CounterpartyRoleCustomer)
	limit, offset := pageParams(c)
	out, err := h.uc.ListByRole(c.Context(), role, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
