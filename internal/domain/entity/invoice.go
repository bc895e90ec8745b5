package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factura.
const (
	InvoiceTypeSale     = "SALE"     // factura de venta (descuenta stock)
	InvoiceTypePurchase = "PURCHASE" // factura de compra (suma stock)
)

// Estados de factura. COMPLETED -> VOIDED es la única transición legal;
// VOIDED es terminal. Nunca se borran facturas.
const (
	InvoiceStatusCompleted = "COMPLETED" // efectos de inventario aplicados
	InvoiceStatusVoided    = "VOIDED"    // anulada con contrapartidas en el ledger
)

// Invoice representa la cabecera de una factura de venta o compra.
// Number es único por (type, period): FV-202501-0001, FC-202501-0001.
type Invoice struct {
	ID             string
	Type           string // SALE | PURCHASE
	Number         string
	Period         string // AAAAMM, derivado de Date al asignar el consecutivo
	WarehouseID    string
	CounterpartyID string // cliente (venta) o proveedor (compra)
	Date           time.Time
	PaymentTerms   string // CONTADO, CREDITO_30, etc. (texto libre)
	Status         string // COMPLETED | VOIDED
	Total          decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSale indica si la factura descuenta inventario.
func (i *Invoice) IsSale() bool { return i.Type == InvoiceTypeSale }
