package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// InvoiceHandler maneja la facturación: ventas, compras, anulación y lecturas
// (protegido).
type InvoiceHandler struct {
	uc      *billing.InvoiceUseCase
	queries *inventory.StockQueryUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, queries *inventory.StockQueryUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, queries: queries}
}

// CreateSale godoc
// @Summary      Crear factura de venta
// @Description  Descuenta stock de la bodega, asigna número FV-AAAAMM-NNNN y registra movimientos OUT, todo en una transacción.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Datos de la factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Failure      422   {object}  dto.ErrorResponse  "regla de negocio"
// @Router       /api/invoices/sales [post]
func (h *InvoiceHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if resp := parseAndValidate(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.CreateSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreatePurchase godoc
// @Summary      Crear factura de compra
// @Description  Suma stock a la bodega, recalcula costo promedio, asigna número FC-AAAAMM-NNNN y registra movimientos IN.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Datos de la factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/purchases [post]
func (h *InvoiceHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if resp := parseAndValidate(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.CreatePurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel godoc
// @Summary      Anular factura
// @Description  Revierte el inventario con movimientos de contrapartida y deja la factura en VOIDED. La factura no se borra.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "ya anulada"
// @Router       /api/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "VOIDED"})
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "SALE o PURCHASE"
// @Param        status  query  string  false  "COMPLETED o VOIDED"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListInvoices(c.Context(), repository.InvoiceFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de inventario de una factura
// @Description  Incluye las contrapartidas de anulación si la factura fue anulada.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/invoices/{id}/movements [get]
func (h *InvoiceHandler) Movements(c *fiber.Ctx) error {
	movements, err := h.queries.MovementsByInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}
