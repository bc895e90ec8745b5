package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ValuationFilter filtros de la valorización de inventario.
type ValuationFilter struct {
	WarehouseID string
	CategoryID  string
	ActiveOnly  bool
	Search      string // busca en SKU y nombre de producto
	Limit       int
	Offset      int
}

// ValuationRow una fila de la valorización: cantidad por el costo promedio.
// Es un modelo de lectura recalculado en cada consulta; puede quedar
// eventualmente consistente frente a transacciones en vuelo.
type ValuationRow struct {
	ProductID    string
	SKU          string
	ProductName  string
	WarehouseID  string
	Warehouse    string
	CategoryID   string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal // costo promedio ponderado del producto
	TotalValue   decimal.Decimal // Quantity * UnitCost
}

// LowStockRow una fila del reporte de reposición: entradas bajo su umbral.
type LowStockRow struct {
	ProductID    string
	SKU          string
	ProductName  string
	WarehouseID  string
	Warehouse    string
	Quantity     decimal.Decimal
	MinQuantity  decimal.Decimal
	SuggestedQty decimal.Decimal // MaxQuantity - Quantity (o MinQuantity si no hay tope)
}

// ValuationRepository puerto de solo lectura para reportes agregados sobre
// StockEntry y datos de referencia. Sin efectos secundarios en el ledger.
type ValuationRepository interface {
	Valuation(ctx context.Context, filter ValuationFilter) ([]*ValuationRow, error)
	LowStock(ctx context.Context, warehouseID string) ([]*LowStockRow, error)
}
