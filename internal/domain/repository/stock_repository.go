package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por
// producto+bodega. Get y GetForUpdate devuelven una entrada en cero si el par
// aún no existe (creación perezosa). Usado dentro de transacciones para
// garantizar consistencia con el ledger.
type StockRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error)
	Upsert(ctx context.Context, stock *entity.StockEntry) error
	// TotalByProduct suma las cantidades del producto en todas las bodegas.
	TotalByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockEntry, error)
}
