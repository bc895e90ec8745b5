package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceFilter filtros de listado de facturas.
type InvoiceFilter struct {
	Type   string // SALE | PURCHASE | vacío = ambos
	Status string // COMPLETED | VOIDED | vacío = todos
	Limit  int
	Offset int
}

// InvoiceRepository define el puerto de persistencia para facturas y líneas.
// Las facturas nunca se borran; el único update permitido es el de estado
// (COMPLETED -> VOIDED) que hace el flujo de anulación.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) durante la anulación.
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
}
