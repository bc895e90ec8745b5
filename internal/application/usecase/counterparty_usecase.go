package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// CounterpartyUseCase CRUD de terceros: clientes y proveedores.
type CounterpartyUseCase struct {
	counterpartyRepo repository.CounterpartyRepository
}

// NewCounterpartyUseCase construye el caso de uso.
func NewCounterpartyUseCase(counterpartyRepo repository.CounterpartyRepository) *CounterpartyUseCase {
	return &CounterpartyUseCase{counterpartyRepo: counterpartyRepo}
}

// Create crea un tercero con rol CUSTOMER o SUPPLIER.
func (uc *CounterpartyUseCase) Create(ctx context.Context, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.CounterpartyRoleCustomer && in.Role != entity.CounterpartyRoleSupplier {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxID != "" {
		existing, err := uc.counterpartyRepo.GetByTaxID(ctx, in.TaxID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	cp := &entity.Counterparty{
		ID:        uuid.New().String(),
		Role:      in.Role,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.counterpartyRepo.Create(ctx, cp); err != nil {
		return nil, err
	}
	return toCounterpartyResponse(cp), nil
}

// GetByID obtiene un tercero.
func (uc *CounterpartyUseCase) GetByID(ctx context.Context, id string) (*dto.CounterpartyResponse, error) {
	cp, err := uc.counterpartyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, domain.NewNotFound("counterparty", id)
	}
	return toCounterpartyResponse(cp), nil
}

// Update actualiza datos de contacto y estado. El rol no cambia: un cliente
// no se convierte en proveedor con facturas ya emitidas.
func (uc *CounterpartyUseCase) Update(ctx context.Context, id string, in dto.UpdateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	cp, err := uc.counterpartyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, domain.NewNotFound("counterparty", id)
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	cp.Name = in.Name
	cp.TaxID = in.TaxID
	cp.Email = in.Email
	cp.Phone = in.Phone
	if in.Active != nil {
		cp.Active = *in.Active
	}
	cp.UpdatedAt = time.Now()
	if err := uc.counterpartyRepo.Update(ctx, cp); err != nil {
		return nil, err
	}
	return toCounterpartyResponse(cp), nil
}

// ListByRole lista clientes o proveedores con paginación.
func (uc *CounterpartyUseCase) ListByRole(ctx context.Context, role string, limit, offset int) ([]*dto.CounterpartyResponse, error) {
	if role != entity.CounterpartyRoleCustomer && role != entity.CounterpartyRoleSupplier {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.counterpartyRepo.ListByRole(ctx, role, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CounterpartyResponse, 0, len(list))
	for _, cp := range list {
		out = append(out, toCounterpartyResponse(cp))
	}
	return out, nil
}

func toCounterpartyResponse(cp *entity.Counterparty) *dto.CounterpartyResponse {
	return &dto.CounterpartyResponse{
		ID:     cp.ID,
		Role:   cp.Role,
		Name:   cp.Name,
		TaxID:  cp.TaxID,
		Email:  cp.Email,
		Phone:  cp.Phone,
		Active: cp.Active,
	}
}
