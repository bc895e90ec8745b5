package dto

import "github.com/shopspring/decimal"

// RegisterAdjustmentRequest body para POST /api/inventory/adjustments.
// Quantity con signo: positivo entra, negativo sale.
type RegisterAdjustmentRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid4"`
	WarehouseID string           `json:"warehouse_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"required"`
	UnitValue   *decimal.Decimal `json:"unit_value,omitempty"`
	Note        string           `json:"note,omitempty" validate:"omitempty,max=250"`
}

// StockResponse existencias de un producto en una bodega.
type StockResponse struct {
	ProductID   string           `json:"product_id"`
	WarehouseID string           `json:"warehouse_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
}

// MovementResponse una fila del ledger en respuestas.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"` // magnitud sin signo
	UnitValue   decimal.Decimal `json:"unit_value"`
	Note        string          `json:"note,omitempty"`
	InvoiceID   string          `json:"invoice_id,omitempty"`
	Date        string          `json:"date"`
}

// ValuationRowResponse una fila de la valorización de inventario.
type ValuationRowResponse struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	WarehouseID string          `json:"warehouse_id"`
	Warehouse   string          `json:"warehouse"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// LowStockRowResponse una sugerencia de reposición.
type LowStockRowResponse struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	WarehouseID  string          `json:"warehouse_id"`
	Warehouse    string          `json:"warehouse"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinQuantity  decimal.Decimal `json:"min_quantity"`
	SuggestedQty decimal.Decimal `json:"suggested_qty"`
}
