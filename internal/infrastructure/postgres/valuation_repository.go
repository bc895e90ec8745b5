package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.ValuationRepository = (*ValuationRepo)(nil)

// ValuationRepo reportes agregados de solo lectura sobre stock y referencia.
type ValuationRepo struct {
	q Querier
}

// NewValuationRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewValuationRepository(q Querier) *ValuationRepo {
	return &ValuationRepo{q: q}
}

// Valuation calcula la valorización: cantidad en stock por el costo promedio
// del producto, por producto y bodega, con filtros opcionales.
func (r *ValuationRepo) Valuation(ctx context.Context, filter repository.ValuationFilter) ([]*repository.ValuationRow, error) {
	query := `
		SELECT s.product_id, p.sku, p.name, s.warehouse_id, w.name,
		       COALESCE(p.category_id::text, ''), s.quantity, p.cost,
		       s.quantity * p.cost AS total_value
		FROM stock_entries s
		JOIN products p ON p.id = s.product_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND s.warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND p.category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	if filter.ActiveOnly {
		query += " AND p.active"
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.sku ILIKE $%d OR p.name ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY total_value DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("valuation: %w", err)
	}
	defer rows.Close()
	var list []*repository.ValuationRow
	for rows.Next() {
		var row repository.ValuationRow
		err := rows.Scan(
			&row.ProductID, &row.SKU, &row.ProductName, &row.WarehouseID, &row.Warehouse,
			&row.CategoryID, &row.Quantity, &row.UnitCost, &row.TotalValue,
		)
		if err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// LowStock lista entradas por debajo de su umbral de reposición. La cantidad
// sugerida apunta al tope si existe, o al umbral en su defecto.
func (r *ValuationRepo) LowStock(ctx context.Context, warehouseID string) ([]*repository.LowStockRow, error) {
	query := `
		SELECT s.product_id, p.sku, p.name, s.warehouse_id, w.name,
		       s.quantity, s.min_quantity,
		       GREATEST(COALESCE(s.max_quantity, s.min_quantity) - s.quantity, 0) AS suggested
		FROM stock_entries s
		JOIN products p ON p.id = s.product_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE s.min_quantity IS NOT NULL AND s.quantity < s.min_quantity`
	args := []any{}
	if warehouseID != "" {
		query += " AND s.warehouse_id = $1"
		args = append(args, warehouseID)
	}
	query += " ORDER BY p.sku"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []*repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		err := rows.Scan(
			&row.ProductID, &row.SKU, &row.ProductName, &row.WarehouseID, &row.Warehouse,
			&row.Quantity, &row.MinQuantity, &row.SuggestedQty,
		)
		if err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
