package inventory

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Movements repository.MovementRepository
	Stock     repository.StockRepository
	Products  repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: mutación de stock y append al ledger comitean juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, r TxRepos) error) error
}
