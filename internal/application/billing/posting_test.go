package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/numbering"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: bodega activa, un cliente, un proveedor y dos productos con stock
// sembrado directamente en la base en memoria.
// ──────────────────────────────────────────────────────────────────────────────

const testUser = "00000000-0000-0000-0000-00000000000a"

type fixture struct {
	db *memDB
	uc *billing.InvoiceUseCase

	warehouseID string
	customerID  string
	supplierID  string
	productA    string
	productB    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	f := &fixture{
		db:          db,
		warehouseID: uuid.New().String(),
		customerID:  uuid.New().String(),
		supplierID:  uuid.New().String(),
		productA:    uuid.New().String(),
		productB:    uuid.New().String(),
	}
	now := time.Now()
	db.warehouses[f.warehouseID] = entity.Warehouse{ID: f.warehouseID, Name: "Bodega Principal", Active: true, CreatedAt: now, UpdatedAt: now}
	db.counterparties[f.customerID] = entity.Counterparty{ID: f.customerID, Role: entity.CounterpartyRoleCustomer, Name: "Cliente Uno", Active: true}
	db.counterparties[f.supplierID] = entity.Counterparty{ID: f.supplierID, Role: entity.CounterpartyRoleSupplier, Name: "Proveedor Uno", Active: true}
	db.products[f.productA] = entity.Product{ID: f.productA, SKU: "SKU-A", Name: "Producto A", Price: decimal.NewFromInt(10), Active: true}
	db.products[f.productB] = entity.Product{ID: f.productB, SKU: "SKU-B", Name: "Producto B", Price: decimal.NewFromInt(20), Active: true}

	runner := &memTxRunner{db: db}
	base := memRepos{db: db}
	productRepo := base
	warehouseRepo := memWarehouseRepo{base}
	ledger := inventory.NewLedgerUseCase(runner, productRepo, warehouseRepo)
	numbers := numbering.New(numbering.Config{})

	f.uc = billing.NewInvoiceUseCase(
		runner, ledger, numbers,
		warehouseRepo, memCounterpartyRepo{base}, productRepo,
		memStockRepo{base}, memInvoiceRepo{base},
	)
	return f
}

// seedStock deja una cantidad exacta de un producto en la bodega del fixture.
func (f *fixture) seedStock(productID string, qty int64) {
	f.db.stock[stockKey(productID, f.warehouseID)] = entity.StockEntry{
		ProductID:   productID,
		WarehouseID: f.warehouseID,
		Quantity:    decimal.NewFromInt(qty),
		UpdatedAt:   time.Now(),
	}
}

func (f *fixture) stockOf(productID string) decimal.Decimal {
	return f.db.stock[stockKey(productID, f.warehouseID)].Quantity
}

func line(productID string, qty, unitValue int64) dto.InvoiceLineRequest {
	return dto.InvoiceLineRequest{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UnitValue: decimal.NewFromInt(unitValue),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_SumaStockYRecalculaCosto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.CreatePurchase(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.supplierID,
		Date:           "2025-01-15",
		Items:          []dto.InvoiceLineRequest{line(f.productA, 20, 3)},
	})
	require.NoError(t, err)

	assert.Equal(t, "FC-202501-0001", out.Number, "el consecutivo de compras usa prefijo FC y periodo AAAAMM")
	assert.Equal(t, entity.InvoiceStatusCompleted, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(60)), "total = 20 * 3.00 = 60.00, fue %s", out.Total)

	// Stock creado perezosamente en cero y sumado a 20.
	assert.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(20)))

	// El costo promedio del producto pasa de 0 al costo de la compra.
	assert.True(t, f.db.products[f.productA].Cost.Equal(decimal.NewFromInt(3)),
		"la primera compra fija el costo promedio en el costo unitario de entrada")

	// Un movimiento IN ligado a la factura, con nota descriptiva.
	movs, err := memMovementRepo{memRepos{db: f.db}}.ListByInvoice(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, "Compra FC-202501-0001", movs[0].Note)
}

func TestCreatePurchase_CostoPromedioPonderado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 10 unidades a 2.00 y luego 10 unidades a 4.00 → promedio 3.00.
	_, err := f.uc.CreatePurchase(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.supplierID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 10, 2)},
	})
	require.NoError(t, err)
	_, err = f.uc.CreatePurchase(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.supplierID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 10, 4)},
	})
	require.NoError(t, err)

	assert.True(t, f.db.products[f.productA].Cost.Equal(decimal.NewFromInt(3)),
		"costo promedio ponderado (10*2 + 10*4) / 20 = 3.00, fue %s", f.db.products[f.productA].Cost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYNumeraConsecutivo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	first, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Date:           "2025-01-10",
		Items:          []dto.InvoiceLineRequest{line(f.productA, 4, 10)},
	})
	require.NoError(t, err)
	second, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Date:           "2025-01-20",
		Items:          []dto.InvoiceLineRequest{line(f.productA, 6, 10)},
	})
	require.NoError(t, err)

	assert.Equal(t, "FV-202501-0001", first.Number)
	assert.Equal(t, "FV-202501-0002", second.Number, "el consecutivo avanza sin huecos dentro del periodo")
	assert.True(t, f.stockOf(f.productA).IsZero(), "10 - 4 - 6 = 0")
}

func TestCreateSale_ConsecutivoReiniciaPorPeriodo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	jan, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Date:           "2025-01-31",
		Items:          []dto.InvoiceLineRequest{line(f.productA, 1, 10)},
	})
	require.NoError(t, err)
	feb, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Date:           "2025-02-01",
		Items:          []dto.InvoiceLineRequest{line(f.productA, 1, 10)},
	})
	require.NoError(t, err)

	assert.Equal(t, "FV-202501-0001", jan.Number)
	assert.Equal(t, "FV-202502-0001", feb.Number, "cada periodo AAAAMM arranca su consecutivo en 1")
}

func TestCreateSale_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	// Exactamente el disponible pasa; una unidad más no.
	_, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 11, 10)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(10)), "el stock no cambia en un rechazo")
	assert.Empty(t, f.db.movements, "no debe quedar ningún movimiento")
	assert.Empty(t, f.db.invoices, "no debe quedar ninguna factura")

	_, err = f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 10, 10)},
	})
	assert.NoError(t, err, "vender exactamente el disponible es válido")
	assert.True(t, f.stockOf(f.productA).IsZero())
}

func TestCreateSale_FallaEnSegundaLinea_SinEfectosParciales(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	f.seedStock(f.productB, 2)
	ctx := context.Background()

	// La primera línea cabría sola; la segunda no tiene stock. Nada debe
	// quedar aplicado: ni movimientos, ni factura, ni número consumido.
	_, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Date:           "2025-01-15",
		Items: []dto.InvoiceLineRequest{
			line(f.productA, 5, 10),
			line(f.productB, 3, 20),
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(10)))
	assert.True(t, f.stockOf(f.productB).Equal(decimal.NewFromInt(2)))
	assert.Empty(t, f.db.movements)
	assert.Empty(t, f.db.invoices)
}

func TestCreateSale_TotalDeclaradoNoCoincide(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	declared := decimal.NewFromInt(999)
	_, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		DeclaredTotal:  &declared,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 5, 10)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(10)), "rollback completo: el stock no cambia")

	// Dentro de la tolerancia de redondeo sí pasa.
	declaredOK := decimal.RequireFromString("50.01")
	_, err = f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		DeclaredTotal:  &declaredOK,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 5, 10)},
	})
	assert.NoError(t, err)
}

func TestCreateSale_RolDeTerceroIncorrecto(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	// Vender a un proveedor viola la regla de rol.
	_, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.supplierID,
		Items:          []dto.InvoiceLineRequest{line(f.productA, 1, 10)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestCreateSale_LineasConDescuentoEImpuesto(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	discount := decimal.NewFromInt(5)
	tax := decimal.RequireFromString("9.50")
	out, err := f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
		WarehouseID:    f.warehouseID,
		CounterpartyID: f.customerID,
		Items: []dto.InvoiceLineRequest{{
			ProductID: f.productA,
			Quantity:  decimal.NewFromInt(5),
			UnitValue: decimal.NewFromInt(10),
			Discount:  &discount,
			Tax:       &tax,
		}},
	})
	require.NoError(t, err)

	// 5*10 - 5 + 9.50 = 54.50
	assert.True(t, out.Total.Equal(decimal.RequireFromString("54.50")), "total fue %s", out.Total)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].LineTotal.Equal(decimal.RequireFromString("54.50")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: N ventas compitiendo por el mismo stock
// ──────────────────────────────────────────────────────────────────────────────

func TestVentasConcurrentes_SoloUnaGanaElStock(t *testing.T) {
	f := newFixture(t)
	f.seedStock(f.productA, 10)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
				WarehouseID:    f.warehouseID,
				CounterpartyID: f.customerID,
				Items:          []dto.InvoiceLineRequest{line(f.productA, 10, 10)},
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una venta debe ganar el stock")
	assert.True(t, f.stockOf(f.productA).IsZero())
	assert.Len(t, f.db.invoices, 1)
	assert.Len(t, f.db.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación ledger ↔ stock
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerConciliaConStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Compra 20, venta 8, compra 5, venta 3.
	ops := []struct {
		sale bool
		qty  int64
	}{
		{false, 20}, {true, 8}, {false, 5}, {true, 3},
	}
	for _, op := range ops {
		var err error
		if op.sale {
			_, err = f.uc.CreateSale(ctx, testUser, dto.CreateInvoiceRequest{
				WarehouseID:    f.warehouseID,
				CounterpartyID: f.customerID,
				Items:          []dto.InvoiceLineRequest{line(f.productA, op.qty, 10)},
			})
		} else {
			_, err = f.uc.CreatePurchase(ctx, testUser, dto.CreateInvoiceRequest{
				WarehouseID:    f.warehouseID,
				CounterpartyID: f.supplierID,
				Items:          []dto.InvoiceLineRequest{line(f.productA, op.qty, 4)},
			})
		}
		require.NoError(t, err)
	}

	sum := decimal.Zero
	for i := range f.db.movements {
		sum = sum.Add(f.db.movements[i].SignedDelta())
	}
	assert.True(t, sum.Equal(f.stockOf(f.productA)),
		"la suma de deltas con signo del ledger (%s) debe igualar el stock (%s)", sum, f.stockOf(f.productA))
	assert.True(t, f.stockOf(f.productA).Equal(decimal.NewFromInt(14)), "20 - 8 + 5 - 3 = 14")
}
