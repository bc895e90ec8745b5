package inventory

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// ValuationUseCase valorización de inventario y reporte de reposición.
// Camino de solo lectura, recalculado en cada consulta sobre StockEntry y
// datos de referencia; sin efectos sobre el ledger.
type ValuationUseCase struct {
	valuationRepo repository.ValuationRepository
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(valuationRepo repository.ValuationRepository) *ValuationUseCase {
	return &ValuationUseCase{valuationRepo: valuationRepo}
}

// Valuation devuelve cantidad × costo promedio por producto/bodega, con
// filtros de bodega, categoría, estado y búsqueda de texto.
func (uc *ValuationUseCase) Valuation(ctx context.Context, filter repository.ValuationFilter) ([]*repository.ValuationRow, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.valuationRepo.Valuation(ctx, filter)
}

// LowStock devuelve las entradas por debajo de su umbral mínimo con la
// cantidad sugerida de pedido.
func (uc *ValuationUseCase) LowStock(ctx context.Context, warehouseID string) ([]*repository.LowStockRow, error) {
	return uc.valuationRepo.LowStock(ctx, warehouseID)
}
