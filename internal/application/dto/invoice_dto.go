package dto

import (
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest una línea de la factura a crear.
type InvoiceLineRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"required"`
	UnitValue decimal.Decimal  `json:"unit_value" validate:"required"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
	Tax       *decimal.Decimal `json:"tax,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices/sales y /api/invoices/purchases.
// Date en formato 2006-01-02; vacío = hoy. DeclaredTotal es opcional: si viene,
// debe coincidir con el total calculado (tolerancia ±0.01).
type CreateInvoiceRequest struct {
	WarehouseID    string               `json:"warehouse_id" validate:"required,uuid4"`
	CounterpartyID string               `json:"counterparty_id" validate:"required,uuid4"`
	Date           string               `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentTerms   string               `json:"payment_terms,omitempty" validate:"omitempty,max=60"`
	DeclaredTotal  *decimal.Decimal     `json:"declared_total,omitempty"`
	Items          []InvoiceLineRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemResponse una línea de factura en respuestas.
type InvoiceItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitValue decimal.Decimal `json:"unit_value"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// InvoiceResponse factura completa en respuestas.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	Type             string                `json:"type"`
	Number           string                `json:"number"`
	Status           string                `json:"status"`
	WarehouseID      string                `json:"warehouse_id"`
	CounterpartyID   string                `json:"counterparty_id"`
	CounterpartyName string                `json:"counterparty_name,omitempty"`
	Date             string                `json:"date"`
	PaymentTerms     string                `json:"payment_terms,omitempty"`
	Total            decimal.Decimal       `json:"total"`
	Items            []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceListRequest filtros de listado de facturas.
type InvoiceListRequest struct {
	PageRequest
	Type   string `query:"type" validate:"omitempty,oneof=SALE PURCHASE"`
	Status string `query:"status" validate:"omitempty,oneof=COMPLETED VOIDED"`
}
