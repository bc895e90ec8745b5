package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// reversalTypeFor devuelve el tipo de contrapartida: la reversa de una venta
// devuelve stock (ADJUSTMENT_IN) y la de una compra lo retira
// (ADJUSTMENT_OUT). Un solo esquema de etiquetado para ambas direcciones.
func reversalTypeFor(invoiceType string) string {
	if invoiceType == entity.InvoiceTypeSale {
		return entity.MovementTypeAdjustmentIn
	}
	return entity.MovementTypeAdjustmentOut
}

// Cancel anula una factura COMPLETED: por cada línea original aplica un
// movimiento de contrapartida con la magnitud exacta en la dirección opuesta,
// ligado a la misma factura, y cambia el estado a VOIDED. Las líneas y los
// movimientos originales no se tocan jamás: el "deshacer" siempre es un
// registro nuevo, nunca una edición ni un borrado. VOIDED es terminal:
// anular dos veces falla con regla de negocio y no deja ningún efecto.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, userID, invoiceID string) error {
	if invoiceID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return uc.txRunner.RunBilling(ctx, func(ctx context.Context, r TxRepos) error {
		// Bloquea la cabecera para que dos anulaciones concurrentes de la
		// misma factura se serialicen; la segunda verá VOIDED y fallará.
		inv, err := r.Invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NewNotFound("invoice", invoiceID)
		}
		if inv.Status != entity.InvoiceStatusCompleted {
			return domain.NewBusinessRule("estado inválido para anulación: %s", inv.Status)
		}

		items, err := r.Invoices.GetItems(ctx, invoiceID)
		if err != nil {
			return err
		}

		reversalType := reversalTypeFor(inv.Type)
		for _, item := range items {
			if _, err := uc.ledger.ApplyInTx(ctx, r.Movements, r.Stock, r.Products, inventory.ApplyParams{
				ProductID:   item.ProductID,
				WarehouseID: inv.WarehouseID,
				Type:        reversalType,
				Quantity:    item.Quantity,
				UnitValue:   item.UnitValue,
				Note:        fmt.Sprintf("Anulación %s", inv.Number),
				InvoiceID:   inv.ID,
				UserID:      userID,
				Date:        now,
			}); err != nil {
				return err
			}
		}

		return r.Invoices.UpdateStatus(ctx, inv.ID, entity.InvoiceStatusVoided, now)
	})
}
