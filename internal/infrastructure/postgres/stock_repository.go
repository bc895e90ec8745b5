package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, quantity, min_quantity, max_quantity, updated_at`

// Get obtiene el stock actual de un producto en una bodega. Devuelve una
// entrada en cero si el par aún no existe.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries WHERE product_id = $1 AND warehouse_id = $2`
	s, err := scanStockEntry(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
// Si el par no existe aún no hay fila que bloquear; la entrada en cero que se
// devuelve termina insertada por Upsert dentro de la misma tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	s, err := scanStockEntry(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (product_id, warehouse_id, quantity, min_quantity, max_quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		stock.ProductID, stock.WarehouseID, stock.Quantity, stock.MinQuantity, stock.MaxQuantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// TotalByProduct suma las cantidades del producto en todas las bodegas.
func (r *StockRepo) TotalByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_entries WHERE product_id = $1`,
		productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total by product: %w", err)
	}
	return total, nil
}

// ListByWarehouse lista las entradas de stock de una bodega con paginación.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		s, err := scanStockEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanStockEntry(row pgx.Row) (*entity.StockEntry, error) {
	var s entity.StockEntry
	err := row.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.MinQuantity, &s.MaxQuantity, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
