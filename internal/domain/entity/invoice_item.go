package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea inmutable de factura.
// LineTotal = Quantity*UnitValue - Discount + Tax (descuento e impuesto en valor absoluto).
// Las líneas nunca se editan después de crear la factura; la anulación se hace
// con movimientos de contrapartida, no tocando las líneas.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitValue decimal.Decimal // precio de venta o costo de compra según el tipo
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	LineTotal decimal.Decimal
}

// ComputeLineTotal calcula el total de la línea a partir de sus componentes.
func (it *InvoiceItem) ComputeLineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitValue).Sub(it.Discount).Add(it.Tax)
}
