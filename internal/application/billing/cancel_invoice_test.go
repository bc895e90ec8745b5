package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func TestCancelVenta_RestauraStockConContrapartida(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	sale, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 5, 10)},
	})
	require.NoError(t, err)
	require.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(5)))

	require.NoError(t, f.uc.Cancel(ctx, testUser, sale.ID))

	// El stock vuelve a 10 pero la historia queda completa: el OUT original
	// más su contrapartida ADJUSTMENT_IN, ambos ligados a la factura.
	assert.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(10)))
	movs, err := memMovementRepo{memRepos{db: f.db}}.ListByInvoice(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2, "el original nunca se borra; la reversa es un registro nuevo")
	assert.Equal(t, entity.MovementTypeOut, movs[0].Type)
	assert.Equal(t, entity.MovementTypeAdjustmentIn, movs[1].Type)
	assert.True(t, movs[0].Quantity.Equal(movs[1].Quantity), "la contrapartida usa la magnitud exacta")
	assert.Equal(t, "Anulación "+sale.Number, movs[1].Note)

	inv := f.db.invoices[sale.ID]
	assert.Equal(t, entity.InvoiceStatusVoided, inv.Status)
}

func TestCancelCompra_RetiraStockConContrapartida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	purchase, err := f.uc.CreatePurchase(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.supplierID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 20, 3)},
	})
	require.NoError(t, err)
	require.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(20)))

	require.NoError(t, f.uc.Cancel(ctx, testUser, purchase.ID))

	assert.True(t, f.stockOf(f.productA).IsZero(), "la reversa de una compra retira el stock")
	movs, err := memMovementRepo{memRepos{db: f.db}}.ListByInvoice(ctx, purchase.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeAdjustmentOut, movs[1].Type)

	// La reversa no recalcula el costo promedio: queda como lo dejó la compra.
	assert.True(t, f.db.products[f.productA].Cost.Equal(decimal.NewFromInt(3)))
}

func TestCancel_DosVecesFalla(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	sale, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 5, 10)},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Cancel(ctx, testUser, sale.ID))

	err = f.uc.Cancel(ctx, testUser, sale.ID)
	require.Error(t, err, "VOIDED es terminal")
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	// La segunda anulación no deja ningún efecto: el stock sigue en 10 y los
	// movimientos de la factura siguen siendo exactamente dos.
	assert.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(10)))
	movs, _ := memMovementRepo{memRepos{db: f.db}}.ListByInvoice(ctx, sale.ID)
	assert.Len(t, movs, 2)
}

func TestCancel_FacturaInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.Cancel(context.Background(), testUser, "ffffffff-ffff-ffff-ffff-ffffffffffff")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelVenta_PermiteRevenderElStockRestaurado(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	sale, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 10, 10)},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Cancel(ctx, testUser, sale.ID))

	// Ciclo completo 10 → 0 → 10: el stock restaurado se puede vender otra vez.
	resale, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 10, 10)},
	})
	require.NoError(t, err)
	assert.NotEqual(t, sale.Number, resale.Number, "la nueva venta consume un número nuevo")
	assert.True(t, f.stockOf(f.productA).IsZero())
}
