package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre stock y ledger.
type StockQueryUseCase struct {
	stockRepo    repository.StockRepository
	movementRepo repository.MovementRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(stockRepo repository.StockRepository, movementRepo repository.MovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movementRepo: movementRepo}
}

// AvailableQuantity devuelve la cantidad disponible de un producto en una
// bodega. Siempre pasa por el accesor canónico de StockEntry.
func (uc *StockQueryUseCase) AvailableQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	if productID == "" || warehouseID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.AvailableQuantity(), nil
}

// TotalQuantity suma las existencias del producto en todas las bodegas.
func (uc *StockQueryUseCase) TotalQuantity(ctx context.Context, productID string) (decimal.Decimal, error) {
	if productID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return uc.stockRepo.TotalByProduct(ctx, productID)
}

// StockByWarehouse lista las entradas de stock de una bodega con paginación.
func (uc *StockQueryUseCase) StockByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockEntry, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
}

// MovementsByProduct historial de movimientos de un producto (lectura del ledger).
func (uc *StockQueryUseCase) MovementsByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByProduct(ctx, productID, from, to, limit, offset)
}

// MovementsByWarehouse historial de movimientos de una bodega.
func (uc *StockQueryUseCase) MovementsByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByWarehouse(ctx, warehouseID, from, to, limit, offset)
}

// MovementsByInvoice movimientos originados por una factura (los de creación
// más las contrapartidas de anulación, si las hay).
func (uc *StockQueryUseCase) MovementsByInvoice(ctx context.Context, invoiceID string) ([]*entity.Movement, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByInvoice(ctx, invoiceID)
}
