package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Facturacion-api/internal/domain/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// LedgerUseCase es el dueño del par StockEntry + Movement: toda mutación de
// cantidades pasa por aquí, siempre con bloqueo de fila (SELECT FOR UPDATE)
// y siempre acompañada de exactamente un registro inmutable en el ledger.
type LedgerUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// ApplyParams parámetros de un movimiento. Quantity es la magnitud sin signo
// (> 0); la dirección la determina Type.
type ApplyParams struct {
	ProductID   string
	WarehouseID string
	Type        string          // entity.MovementTypeIn / Out / AdjustmentIn / AdjustmentOut
	Quantity    decimal.Decimal // magnitud, > 0
	UnitValue   decimal.Decimal // costo unitario (entradas) o precio unitario (salidas)
	Note        string
	InvoiceID   string // vacío si no proviene de factura
	UserID      string
	Date        time.Time
}

// ApplyInTx aplica un movimiento usando los repositorios del caller (misma
// transacción SQL): bloquea la fila de stock, ajusta la cantidad y agrega el
// registro al ledger como un solo paso atómico; nunca uno sin el otro.
//
// Salidas (OUT, ADJUSTMENT_OUT) que dejarían el stock en negativo fallan con
// ErrInsufficientStock sin mutar nada. Entradas (IN, ADJUSTMENT_IN) sobre un
// par inexistente lo crean en cero primero. Una entrada IN (compra) recalcula
// además el costo promedio ponderado del producto; las reversas no lo tocan
// para no distorsionar el promedio con valores históricos.
func (uc *LedgerUseCase) ApplyInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	p ApplyParams,
) (decimal.Decimal, error) {
	if !p.Quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}

	// Bloquea la fila en stock_entries (SELECT FOR UPDATE) para evitar
	// condiciones de carrera; si el par no existe llega una entrada en cero.
	stock, err := stockRepo.GetForUpdate(ctx, p.ProductID, p.WarehouseID)
	if err != nil {
		return decimal.Zero, err
	}

	if entity.IsInbound(p.Type) {
		if p.Type == entity.MovementTypeIn {
			product, err := productRepo.GetByID(ctx, p.ProductID)
			if err != nil {
				return decimal.Zero, err
			}
			if product == nil {
				return decimal.Zero, domain.NewNotFound("product", p.ProductID)
			}
			newCost := domaininv.WeightedAverageCost(stock.Quantity, product.Cost, p.Quantity, p.UnitValue)
			if err := productRepo.UpdateCost(ctx, p.ProductID, newCost); err != nil {
				return decimal.Zero, err
			}
		}
		stock.Quantity = stock.Quantity.Add(p.Quantity)
	} else {
		if stock.AvailableQuantity().LessThan(p.Quantity) {
			return decimal.Zero, domain.NewInsufficientStock(p.ProductID, p.WarehouseID)
		}
		stock.Quantity = stock.Quantity.Sub(p.Quantity)
	}

	stock.UpdatedAt = p.Date
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return decimal.Zero, err
	}

	mov := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   p.ProductID,
		WarehouseID: p.WarehouseID,
		Type:        p.Type,
		Quantity:    p.Quantity,
		UnitValue:   p.UnitValue,
		Note:        p.Note,
		InvoiceID:   p.InvoiceID,
		Date:        p.Date,
		CreatedAt:   p.Date,
		CreatedBy:   p.UserID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

// AdjustmentInput entrada para un ajuste manual de inventario.
// Quantity con signo: positivo entra (ADJUSTMENT_IN), negativo sale
// (ADJUSTMENT_OUT).
type AdjustmentInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitValue   *decimal.Decimal // opcional; por defecto el costo promedio del producto
	Note        string
	UserID      string
}

// RegisterAdjustment registra un ajuste manual en su propia transacción:
// valida referencias, bloquea la fila de stock y aplica el movimiento con
// Commit o Rollback.
func (uc *LedgerUseCase) RegisterAdjustment(ctx context.Context, input AdjustmentInput) error {
	if input.ProductID == "" || input.WarehouseID == "" || input.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFound("product", input.ProductID)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.NewNotFound("warehouse", input.WarehouseID)
	}

	movType := entity.MovementTypeAdjustmentIn
	magnitude := input.Quantity
	if input.Quantity.LessThan(decimal.Zero) {
		movType = entity.MovementTypeAdjustmentOut
		magnitude = input.Quantity.Neg()
	}
	unitValue := product.Cost
	if input.UnitValue != nil {
		if input.UnitValue.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		unitValue = *input.UnitValue
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		_, err := uc.ApplyInTx(ctx, r.Movements, r.Stock, r.Products, ApplyParams{
			ProductID:   input.ProductID,
			WarehouseID: input.WarehouseID,
			Type:        movType,
			Quantity:    magnitude,
			UnitValue:   unitValue,
			Note:        input.Note,
			UserID:      input.UserID,
			Date:        now,
		})
		return err
	})
}
