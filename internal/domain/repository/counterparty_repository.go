package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// CounterpartyRepository define el puerto de persistencia para terceros
// (clientes y proveedores de facturación).
type CounterpartyRepository interface {
	Create(ctx context.Context, cp *entity.Counterparty) error
	GetByID(ctx context.Context, id string) (*entity.Counterparty, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Counterparty, error)
	Update(ctx context.Context, cp *entity.Counterparty) error
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.Counterparty, error)
}
