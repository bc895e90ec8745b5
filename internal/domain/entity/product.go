package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Cost es promedio ponderado recalculado con cada compra; el stock se maneja
// por bodega en StockEntry.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	CategoryID  string // vacío si no tiene categoría
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
