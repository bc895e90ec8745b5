package billing

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NewNotFound("invoice", id)
	}
	items, err := uc.invoiceRepo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	counterpartyName := ""
	if cp, err := uc.counterpartyRepo.GetByID(ctx, inv.CounterpartyID); err == nil && cp != nil {
		counterpartyName = cp.Name
	}
	return toInvoiceResponse(inv, counterpartyName, items), nil
}

// ListInvoices lista facturas con filtros de tipo y estado (sin líneas).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	invoices, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, "", nil))
	}
	return out, nil
}
