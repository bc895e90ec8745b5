package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// TxRepos repositorios de facturación e inventario atados a una misma
// transacción de BD.
type TxRepos struct {
	Movements repository.MovementRepository
	Stock     repository.StockRepository
	Products  repository.ProductRepository
	Invoices  repository.InvoiceRepository
	Sequences repository.SequenceRepository
}

// TxRunner ejecuta una función dentro de una transacción que incluye repos de
// inventario y facturación. Asignación de número, movimientos de stock,
// appends al ledger y escritura de la factura comitean juntos o ninguno.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(ctx context.Context, r TxRepos) error) error
}

// StockLedger interfaz para integrar facturación con inventario.
// ApplyInTx aplica un movimiento usando los repositorios del caller (misma
// transacción). Si retorna error (ej: ErrInsufficientStock), el caller debe
// hacer rollback.
type StockLedger interface {
	ApplyInTx(
		ctx context.Context,
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		p inventory.ApplyParams,
	) (decimal.Decimal, error)
}

// NumberAllocator asigna el número de factura dentro de la transacción del
// caller; el periodo retornado es la clave AAAAMM del consecutivo.
type NumberAllocator interface {
	NextInTx(ctx context.Context, seqRepo repository.SequenceRepository, docType string, asOf time.Time) (number, period string, err error)
}
