package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// InventoryHandler maneja ajustes, consultas de stock, historial de
// movimientos y reportes (protegido).
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	queries   *inventory.StockQueryUseCase
	valuation *inventory.ValuationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, queries *inventory.StockQueryUseCase, valuation *inventory.ValuationUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries, valuation: valuation}
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste manual de inventario
// @Description  Quantity con signo: positivo entra, negativo sale.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "Datos del ajuste"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if resp := parseAndValidate(c, &in); resp != nil {
		return resp
	}
	err := h.ledger.RegisterAdjustment(c.Context(), inventory.AdjustmentInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitValue:   in.UnitValue,
		Note:        in.Note,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}

// GetStock godoc
// @Summary      Stock de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	qty, err := h.queries.AvailableQuantity(c.Context(), productID, warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: qty})
}

// GetTotalStock godoc
// @Summary      Stock total de un producto en todas las bodegas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Success      200  {object}  map[string]any
// @Router       /api/inventory/stock/total [get]
func (h *InventoryHandler) GetTotalStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	total, err := h.queries.TotalQuantity(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": productID, "total_quantity": total})
}

// ListStockByWarehouse godoc
// @Summary      Existencias de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/inventory/warehouses/{id}/stock [get]
func (h *InventoryHandler) ListStockByWarehouse(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	entries, err := h.queries.StockByWarehouse(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(entries))
	for _, s := range entries {
		out = append(out, dto.StockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
			MinQuantity: s.MinQuantity,
			MaxQuantity: s.MaxQuantity,
		})
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Filtrar por product_id o warehouse_id (uno de los dos), con rango de fechas opcional.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "ID del producto"
// @Param        warehouse_id  query  string  false  "ID de la bodega"
// @Param        from          query  string  false  "Fecha inicial (2006-01-02)"
// @Param        to            query  string  false  "Fecha final (2006-01-02)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, formato 2006-01-02"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, formato 2006-01-02"})
	}
	limit, offset := pageParams(c)

	var movements []*entity.Movement
	switch {
	case productID != "":
		movements, err = h.queries.MovementsByProduct(c.Context(), productID, from, to, limit, offset)
	case warehouseID != "":
		movements, err = h.queries.MovementsByWarehouse(c.Context(), warehouseID, from, to, limit, offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o warehouse_id es requerido"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// Valuation godoc
// @Summary      Valorización de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "ID de la bodega"
// @Param        category_id   query  string  false  "ID de la categoría"
// @Param        search        query  string  false  "Busca en SKU y nombre"
// @Success      200  {array}  dto.ValuationRowResponse
// @Router       /api/reports/valuation [get]
func (h *InventoryHandler) Valuation(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	rows, err := h.valuation.Valuation(c.Context(), repository.ValuationFilter{
		WarehouseID: c.Query("warehouse_id"),
		CategoryID:  c.Query("category_id"),
		ActiveOnly:  c.QueryBool("active_only", false),
		Search:      c.Query("search"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ValuationRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ValuationRowResponse{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			WarehouseID: r.WarehouseID,
			Warehouse:   r.Warehouse,
			Quantity:    r.Quantity,
			UnitCost:    r.UnitCost,
			TotalValue:  r.TotalValue,
		})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Reporte de reposición (stock bajo umbral)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "ID de la bodega"
// @Success      200  {array}  dto.LowStockRowResponse
// @Router       /api/reports/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.valuation.LowStock(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LowStockRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockRowResponse{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			WarehouseID:  r.WarehouseID,
			Warehouse:    r.Warehouse,
			Quantity:     r.Quantity,
			MinQuantity:  r.MinQuantity,
			SuggestedQty: r.SuggestedQty,
		})
	}
	return c.JSON(out)
}

func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponses(movements []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UnitValue:   m.UnitValue,
			Note:        m.Note,
			InvoiceID:   m.InvoiceID,
			Date:        m.Date.Format("2006-01-02"),
		})
	}
	return out
}
