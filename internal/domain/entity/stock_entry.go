package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry representa la cantidad actual de un producto en una bodega.
// Se crea perezosamente en cero con el primer movimiento que toca el par
// (producto, bodega) y nunca se borra (queda en cero). Solo se muta dentro de
// la transacción que también inserta el Movement correspondiente.
type StockEntry struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	MinQuantity *decimal.Decimal // umbral de reposición (opcional)
	MaxQuantity *decimal.Decimal // tope sugerido (opcional)
	UpdatedAt   time.Time
}

// AvailableQuantity es el único accesor canónico de disponibilidad: toda
// verificación de stock debe pasar por aquí, nunca por otro campo.
func (s *StockEntry) AvailableQuantity() decimal.Decimal {
	return s.Quantity
}

// BelowMin indica si la entrada está por debajo de su umbral de reposición.
func (s *StockEntry) BelowMin() bool {
	return s.MinQuantity != nil && s.Quantity.LessThan(*s.MinQuantity)
}
