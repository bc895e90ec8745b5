package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger. La dirección la da el tipo: el campo
// Quantity del Movement siempre guarda la magnitud sin signo.
const (
	MovementTypeIn            = "IN"             // entrada por compra
	MovementTypeOut           = "OUT"            // salida por venta
	MovementTypeAdjustmentIn  = "ADJUSTMENT_IN"  // ajuste positivo (incluye reversa de venta)
	MovementTypeAdjustmentOut = "ADJUSTMENT_OUT" // ajuste negativo (incluye reversa de compra)
)

// Movement representa una fila inmutable del ledger de inventario: una vez
// insertada nunca se edita ni se borra. Es la fuente de verdad de auditoría;
// StockEntry.Quantity debe conciliar con la suma de los deltas con signo de
// sus movimientos en orden de creación.
type Movement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // magnitud sin signo, > 0
	UnitValue   decimal.Decimal // costo unitario (entradas) o precio unitario (salidas)
	Note        string
	InvoiceID   string // vacío si el movimiento no proviene de una factura
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
}

// SignedDelta devuelve el efecto del movimiento sobre el stock según su tipo.
func (m *Movement) SignedDelta() decimal.Decimal {
	switch m.Type {
	case MovementTypeIn, MovementTypeAdjustmentIn:
		return m.Quantity
	case MovementTypeOut, MovementTypeAdjustmentOut:
		return m.Quantity.Neg()
	}
	return decimal.Zero
}

// IsInbound indica si el tipo suma stock.
func IsInbound(movementType string) bool {
	return movementType == MovementTypeIn || movementType == MovementTypeAdjustmentIn
}
