package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivo de facturación sobre PostgreSQL. Usar siempre
// dentro de la transacción de creación de factura.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo de (doc_type, period) en una sola
// sentencia atómica. El upsert crea la fila en 1 si el periodo aún no existe;
// dos transacciones concurrentes sobre la misma fila se serializan por el lock
// de fila del UPDATE, así que nunca devuelven el mismo valor.
func (r *SequenceRepo) Next(ctx context.Context, docType, period string) (int64, error) {
	var val int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO invoice_sequences (doc_type, period, current_val)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET current_val = invoice_sequences.current_val + 1
		RETURNING current_val`,
		docType, period,
	).Scan(&val)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return val, nil
}
