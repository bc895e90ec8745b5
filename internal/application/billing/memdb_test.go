package billing_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos en memoria para los tests de facturación. Emula la semántica
// transaccional de PostgreSQL: el runner toma un lock global (transacciones
// serializadas), toma un snapshot al inicio y lo restaura si el callback
// falla, de modo que un error dentro de la tx no deja ningún efecto parcial.
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	mu             sync.Mutex
	products       map[string]entity.Product
	warehouses     map[string]entity.Warehouse
	counterparties map[string]entity.Counterparty
	stock          map[string]entity.StockEntry // product|warehouse
	movements      []entity.Movement
	invoices       map[string]entity.Invoice
	items          map[string][]entity.InvoiceItem
	sequences      map[string]int64 // docType|period
}

func newMemDB() *memDB {
	return &memDB{
		products:       map[string]entity.Product{},
		warehouses:     map[string]entity.Warehouse{},
		counterparties: map[string]entity.Counterparty{},
		stock:          map[string]entity.StockEntry{},
		invoices:       map[string]entity.Invoice{},
		items:          map[string][]entity.InvoiceItem{},
		sequences:      map[string]int64{},
	}
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

type memSnapshot struct {
	products       map[string]entity.Product
	warehouses     map[string]entity.Warehouse
	counterparties map[string]entity.Counterparty
	stock          map[string]entity.StockEntry
	movements      []entity.Movement
	invoices       map[string]entity.Invoice
	items          map[string][]entity.InvoiceItem
	sequences      map[string]int64
}

func (db *memDB) snapshot() memSnapshot {
	s := memSnapshot{
		products:       make(map[string]entity.Product, len(db.products)),
		warehouses:     make(map[string]entity.Warehouse, len(db.warehouses)),
		counterparties: make(map[string]entity.Counterparty, len(db.counterparties)),
		stock:          make(map[string]entity.StockEntry, len(db.stock)),
		movements:      append([]entity.Movement(nil), db.movements...),
		invoices:       make(map[string]entity.Invoice, len(db.invoices)),
		items:          make(map[string][]entity.InvoiceItem, len(db.items)),
		sequences:      make(map[string]int64, len(db.sequences)),
	}
	for k, v := range db.products {
		s.products[k] = v
	}
	for k, v := range db.warehouses {
		s.warehouses[k] = v
	}
	for k, v := range db.counterparties {
		s.counterparties[k] = v
	}
	for k, v := range db.stock {
		s.stock[k] = v
	}
	for k, v := range db.invoices {
		s.invoices[k] = v
	}
	for k, v := range db.items {
		s.items[k] = append([]entity.InvoiceItem(nil), v...)
	}
	for k, v := range db.sequences {
		s.sequences[k] = v
	}
	return s
}

func (db *memDB) restore(s memSnapshot) {
	db.products = s.products
	db.warehouses = s.warehouses
	db.counterparties = s.counterparties
	db.stock = s.stock
	db.movements = s.movements
	db.invoices = s.invoices
	db.items = s.items
	db.sequences = s.sequences
}

// memRepos implementa todos los puertos de repositorio sobre memDB. Con
// inTx=false cada operación toma el lock (equivalente a ir contra el pool);
// con inTx=true el lock lo sostiene el runner.
type memRepos struct {
	db   *memDB
	inTx bool
}

func (r memRepos) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.db.mu.Lock()
	return r.db.mu.Unlock
}

// ── ProductRepository ────────────────────────────────────────────────────────

func (r memRepos) Create(ctx context.Context, p *entity.Product) error {
	defer r.lock()()
	r.db.products[p.ID] = *p
	return nil
}

func (r memRepos) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	defer r.lock()()
	if p, ok := r.db.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r memRepos) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	defer r.lock()()
	for _, p := range r.db.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memRepos) Update(ctx context.Context, p *entity.Product) error {
	defer r.lock()()
	r.db.products[p.ID] = *p
	return nil
}

func (r memRepos) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	defer r.lock()()
	p := r.db.products[productID]
	p.Cost = cost
	r.db.products[productID] = p
	return nil
}

func (r memRepos) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

var _ repository.ProductRepository = memRepos{}

// ── StockRepository ──────────────────────────────────────────────────────────

type memStockRepo struct{ memRepos }

func (r memStockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	defer r.lock()()
	if s, ok := r.db.stock[stockKey(productID, warehouseID)]; ok {
		cp := s
		return &cp, nil
	}
	return &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r memStockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r memStockRepo) Upsert(ctx context.Context, s *entity.StockEntry) error {
	defer r.lock()()
	r.db.stock[stockKey(s.ProductID, s.WarehouseID)] = *s
	return nil
}

func (r memStockRepo) TotalByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	defer r.lock()()
	total := decimal.Zero
	for _, s := range r.db.stock {
		if s.ProductID == productID {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

func (r memStockRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockEntry, error) {
	return nil, nil
}

var _ repository.StockRepository = memStockRepo{}

// ── MovementRepository ───────────────────────────────────────────────────────

type memMovementRepo struct{ memRepos }

func (r memMovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	defer r.lock()()
	r.db.movements = append(r.db.movements, *m)
	return nil
}

func (r memMovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	defer r.lock()()
	for _, m := range r.db.movements {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memMovementRepo) ListByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	defer r.lock()()
	var out []*entity.Movement
	for i := range r.db.movements {
		if r.db.movements[i].WarehouseID == warehouseID {
			cp := r.db.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	defer r.lock()()
	var out []*entity.Movement
	for i := range r.db.movements {
		if r.db.movements[i].ProductID == productID {
			cp := r.db.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memMovementRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Movement, error) {
	defer r.lock()()
	var out []*entity.Movement
	for i := range r.db.movements {
		if r.db.movements[i].InvoiceID == invoiceID {
			cp := r.db.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ repository.MovementRepository = memMovementRepo{}

// ── InvoiceRepository ────────────────────────────────────────────────────────

type memInvoiceRepo struct{ memRepos }

func (r memInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	defer r.lock()()
	r.db.invoices[inv.ID] = *inv
	return nil
}

func (r memInvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	defer r.lock()()
	r.db.items[item.InvoiceID] = append(r.db.items[item.InvoiceID], *item)
	return nil
}

func (r memInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	defer r.lock()()
	if inv, ok := r.db.invoices[id]; ok {
		cp := inv
		return &cp, nil
	}
	return nil, nil
}

func (r memInvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r memInvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	defer r.lock()()
	var out []*entity.InvoiceItem
	for i := range r.db.items[invoiceID] {
		cp := r.db.items[invoiceID][i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r memInvoiceRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	defer r.lock()()
	inv := r.db.invoices[id]
	inv.Status = status
	inv.UpdatedAt = updatedAt
	r.db.invoices[id] = inv
	return nil
}

func (r memInvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	defer r.lock()()
	var out []*entity.Invoice
	for _, inv := range r.db.invoices {
		if filter.Type != "" && inv.Type != filter.Type {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		cp := inv
		out = append(out, &cp)
	}
	return out, nil
}

var _ repository.InvoiceRepository = memInvoiceRepo{}

// ── SequenceRepository ───────────────────────────────────────────────────────

type memSequenceRepo struct{ memRepos }

func (r memSequenceRepo) Next(ctx context.Context, docType, period string) (int64, error) {
	defer r.lock()()
	key := docType + "|" + period
	r.db.sequences[key]++
	return r.db.sequences[key], nil
}

var _ repository.SequenceRepository = memSequenceRepo{}

// ── WarehouseRepository / CounterpartyRepository ─────────────────────────────

type memWarehouseRepo struct{ memRepos }

func (r memWarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	defer r.lock()()
	r.db.warehouses[w.ID] = *w
	return nil
}

func (r memWarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	defer r.lock()()
	if w, ok := r.db.warehouses[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (r memWarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	defer r.lock()()
	r.db.warehouses[w.ID] = *w
	return nil
}

func (r memWarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

var _ repository.WarehouseRepository = memWarehouseRepo{}

type memCounterpartyRepo struct{ memRepos }

func (r memCounterpartyRepo) Create(ctx context.Context, cp *entity.Counterparty) error {
	defer r.lock()()
	r.db.counterparties[cp.ID] = *cp
	return nil
}

func (r memCounterpartyRepo) GetByID(ctx context.Context, id string) (*entity.Counterparty, error) {
	defer r.lock()()
	if cp, ok := r.db.counterparties[id]; ok {
		c := cp
		return &c, nil
	}
	return nil, nil
}

func (r memCounterpartyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Counterparty, error) {
	defer r.lock()()
	for _, cp := range r.db.counterparties {
		if cp.TaxID == taxID {
			c := cp
			return &c, nil
		}
	}
	return nil, nil
}

func (r memCounterpartyRepo) Update(ctx context.Context, cp *entity.Counterparty) error {
	defer r.lock()()
	r.db.counterparties[cp.ID] = *cp
	return nil
}

func (r memCounterpartyRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.Counterparty, error) {
	return nil, nil
}

var _ repository.CounterpartyRepository = memCounterpartyRepo{}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type memTxRunner struct{ db *memDB }

func (r *memTxRunner) txRepos() billing.TxRepos {
	base := memRepos{db: r.db, inTx: true}
	return billing.TxRepos{
		Movements: memMovementRepo{base},
		Stock:     memStockRepo{base},
		Products:  base,
		Invoices:  memInvoiceRepo{base},
		Sequences: memSequenceRepo{base},
	}
}

func (r *memTxRunner) RunBilling(ctx context.Context, fn func(ctx context.Context, repos billing.TxRepos) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	snap := r.db.snapshot()
	if err := fn(ctx, r.txRepos()); err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}

func (r *memTxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	snap := r.db.snapshot()
	base := memRepos{db: r.db, inTx: true}
	repos := inventory.TxRepos{
		Movements: memMovementRepo{base},
		Stock:     memStockRepo{base},
		Products:  base,
	}
	if err := fn(ctx, repos); err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}

var _ billing.TxRunner = (*memTxRunner)(nil)
var _ inventory.TxRunner = (*memTxRunner)(nil)
