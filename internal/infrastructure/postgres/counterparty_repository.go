package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)

// CounterpartyRepo implementación de CounterpartyRepository sobre PostgreSQL (usable con pool o tx).
type CounterpartyRepo struct {
	q Querier
}

// NewCounterpartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{q: q}
}

const counterpartyColumns = `id, role, name, tax_id, email, phone, active, created_at, updated_at`

// Create persiste un nuevo tercero.
func (r *CounterpartyRepo) Create(ctx context.Context, cp *entity.Counterparty) error {
	query := `
		INSERT INTO counterparties (` + counterpartyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		cp.ID, cp.Role, cp.Name, nullIfEmpty(cp.TaxID), cp.Email, cp.Phone,
		cp.Active, cp.CreatedAt, cp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert counterparty: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID.
func (r *CounterpartyRepo) GetByID(ctx context.Context, id string) (*entity.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE id = $1`
	cp, err := scanCounterparty(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get counterparty: %w", err)
	}
	return cp, nil
}

// GetByTaxID obtiene un tercero por NIT/cédula.
func (r *CounterpartyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE tax_id = $1`
	cp, err := scanCounterparty(r.q.QueryRow(ctx, query, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get counterparty by tax id: %w", err)
	}
	return cp, nil
}

// Update actualiza un tercero existente. El rol no se actualiza.
func (r *CounterpartyRepo) Update(ctx context.Context, cp *entity.Counterparty) error {
	query := `
		UPDATE counterparties SET name = $2, tax_id = $3, email = $4, phone = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		cp.ID, cp.Name, nullIfEmpty(cp.TaxID), cp.Email, cp.Phone, cp.Active, cp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update counterparty: %w", err)
	}
	return nil
}

// ListByRole lista clientes o proveedores con paginación.
func (r *CounterpartyRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE role = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list counterparties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Counterparty
	for rows.Next() {
		cp, err := scanCounterparty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan counterparty: %w", err)
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}

func scanCounterparty(row pgx.Row) (*entity.Counterparty, error) {
	var cp entity.Counterparty
	var taxID *string
	err := row.Scan(
		&cp.ID, &cp.Role, &cp.Name, &taxID, &cp.Email, &cp.Phone,
		&cp.Active, &cp.CreatedAt, &cp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if taxID != nil {
		cp.TaxID = *taxID
	}
	return &cp, nil
}
