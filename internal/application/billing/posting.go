package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// totalTolerance tolerancia de redondeo al comparar el total declarado por el
// caller contra el calculado.
var totalTolerance = decimal.NewFromFloat(0.01)

// InvoiceUseCase crea y anula facturas de venta y compra. Venta y compra son
// el mismo algoritmo de "posting dirigido" con la dirección parametrizada:
// una venta descuenta stock (OUT), una compra lo suma (IN). Toda la mutación
// (consecutivo, movimientos, stock, cabecera y líneas) ocurre en una sola
// transacción: si algo falla no queda ningún efecto parcial.
type InvoiceUseCase struct {
	txRunner         TxRunner
	ledger           StockLedger
	numbers          NumberAllocator
	warehouseRepo    repository.WarehouseRepository
	counterpartyRepo repository.CounterpartyRepository
	productRepo      repository.ProductRepository
	stockRepo        repository.StockRepository
	invoiceRepo      repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	numbers NumberAllocator,
	warehouseRepo repository.WarehouseRepository,
	counterpartyRepo repository.CounterpartyRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:         txRunner,
		ledger:           ledger,
		numbers:          numbers,
		warehouseRepo:    warehouseRepo,
		counterpartyRepo: counterpartyRepo,
		productRepo:      productRepo,
		stockRepo:        stockRepo,
		invoiceRepo:      invoiceRepo,
	}
}

// postingSpec parametriza la dirección del posting.
type postingSpec struct {
	docType           string // entity.InvoiceTypeSale | InvoiceTypePurchase
	movementType      string // OUT para ventas, IN para compras
	counterpartyRole  string // CUSTOMER | SUPPLIER
	noteVerb          string // "Venta" | "Compra"
	checkAvailability bool   // solo ventas verifican disponibilidad
}

var (
	salePosting = postingSpec{
		docType:           entity.InvoiceTypeSale,
		movementType:      entity.MovementTypeOut,
		counterpartyRole:  entity.CounterpartyRoleCustomer,
		noteVerb:          "Venta",
		checkAvailability: true,
	}
	purchasePosting = postingSpec{
		docType:           entity.InvoiceTypePurchase,
		movementType:      entity.MovementTypeIn,
		counterpartyRole:  entity.CounterpartyRoleSupplier,
		noteVerb:          "Compra",
		checkAvailability: false,
	}
)

// CreateSale crea una factura de venta: valida referencias y disponibilidad,
// asigna número FV-AAAAMM-NNNN y descuenta inventario por cada línea.
func (uc *InvoiceUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	return uc.post(ctx, userID, in, salePosting)
}

// CreatePurchase crea una factura de compra: sin precondición de
// disponibilidad, asigna número FC-AAAAMM-NNNN y suma inventario por cada
// línea (creando la entrada de stock en cero si no existía).
func (uc *InvoiceUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	return uc.post(ctx, userID, in, purchasePosting)
}

// post es la rutina genérica de posting dirigido.
func (uc *InvoiceUseCase) post(ctx context.Context, userID string, in dto.CreateInvoiceRequest, spec postingSpec) (*dto.InvoiceResponse, error) {
	if in.WarehouseID == "" || in.CounterpartyID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseInvoiceDate(in.Date)
	if err != nil {
		return nil, err
	}

	// Validar referencias (fuera de la tx, solo lectura). Fail-fast: ninguna
	// precondición fallida deja efectos parciales porque aún no hay mutación.
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.NewNotFound("warehouse", in.WarehouseID)
	}
	if !wh.Active {
		return nil, domain.NewBusinessRule("la bodega %s está inactiva", wh.Name)
	}

	cp, err := uc.counterpartyRepo.GetByID(ctx, in.CounterpartyID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, domain.NewNotFound("counterparty", in.CounterpartyID)
	}
	if cp.Role != spec.counterpartyRole {
		return nil, domain.NewBusinessRule("el tercero %s no tiene rol %s", cp.Name, spec.counterpartyRole)
	}
	if !cp.Active {
		return nil, domain.NewBusinessRule("el tercero %s está inactivo", cp.Name)
	}

	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if err := validateLine(item); err != nil {
			return nil, err
		}
		if _, seen := productsByID[item.ProductID]; seen {
			continue
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewNotFound("product", item.ProductID)
		}
		if !product.Active {
			return nil, domain.NewBusinessRule("el producto %s está inactivo", product.SKU)
		}
		productsByID[item.ProductID] = product
	}

	// Prechequeo de disponibilidad (ventas). La verificación definitiva la
	// repite el ledger dentro de la tx con la fila bloqueada; este chequeo
	// solo rechaza temprano lo que de todos modos fallaría.
	if spec.checkAvailability {
		required := make(map[string]decimal.Decimal)
		for _, item := range in.Items {
			required[item.ProductID] = required[item.ProductID].Add(item.Quantity)
		}
		for productID, qty := range required {
			stock, err := uc.stockRepo.Get(ctx, productID, in.WarehouseID)
			if err != nil {
				return nil, err
			}
			if stock.AvailableQuantity().LessThan(qty) {
				return nil, domain.NewInsufficientStock(productID, in.WarehouseID)
			}
		}
	}

	now := time.Now()
	invoiceID := uuid.New().String() // referencia de los movimientos del ledger
	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err = uc.txRunner.RunBilling(ctx, func(ctx context.Context, r TxRepos) error {
		// 1) Número de factura: el upsert del consecutivo bloquea la fila del
		// alcance (tipo, periodo) hasta el commit, así dos requests
		// concurrentes jamás reciben el mismo número.
		number, period, err := uc.numbers.NextInTx(ctx, r.Sequences, spec.docType, date)
		if err != nil {
			return err
		}

		// 2) Por cada línea: total y movimiento de inventario con referencia
		// a la factura. Si el ledger retorna error (ej: sin stock) se
		// retorna y el runner hace rollback de todo.
		total := decimal.Zero
		items = items[:0]
		for _, line := range in.Items {
			discount, tax := lineDefaults(line)
			lineTotal := line.Quantity.Mul(line.UnitValue).Sub(discount).Add(tax)
			total = total.Add(lineTotal)

			if _, err := uc.ledger.ApplyInTx(ctx, r.Movements, r.Stock, r.Products, inventory.ApplyParams{
				ProductID:   line.ProductID,
				WarehouseID: in.WarehouseID,
				Type:        spec.movementType,
				Quantity:    line.Quantity,
				UnitValue:   line.UnitValue,
				Note:        fmt.Sprintf("%s %s", spec.noteVerb, number),
				InvoiceID:   invoiceID,
				UserID:      userID,
				Date:        now,
			}); err != nil {
				return err
			}

			items = append(items, &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: invoiceID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitValue: line.UnitValue,
				Discount:  discount,
				Tax:       tax,
				LineTotal: lineTotal,
			})
		}

		// 3) Si el caller declaró un total, debe cuadrar con el calculado
		// (tolerancia de redondeo ±0.01).
		if in.DeclaredTotal != nil && in.DeclaredTotal.Sub(total).Abs().GreaterThan(totalTolerance) {
			return domain.NewBusinessRule("el total declarado %s no coincide con el calculado %s", in.DeclaredTotal.StringFixed(2), total.StringFixed(2))
		}

		// 4) Cabecera COMPLETED y líneas inmutables, misma transacción que
		// los movimientos del paso 2.
		inv = &entity.Invoice{
			ID:             invoiceID,
			Type:           spec.docType,
			Number:         number,
			Period:         period,
			WarehouseID:    in.WarehouseID,
			CounterpartyID: in.CounterpartyID,
			Date:           date,
			PaymentTerms:   in.PaymentTerms,
			Status:         entity.InvoiceStatusCompleted,
			Total:          total,
			CreatedBy:      userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := r.Invoices.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, cp.Name, items), nil
}

func validateLine(line *dto.InvoiceLineRequest) error {
	if line.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !line.Quantity.GreaterThan(decimal.Zero) || !line.UnitValue.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if line.Discount != nil && line.Discount.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if line.Tax != nil && line.Tax.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func lineDefaults(line dto.InvoiceLineRequest) (discount, tax decimal.Decimal) {
	discount, tax = decimal.Zero, decimal.Zero
	if line.Discount != nil {
		discount = *line.Discount
	}
	if line.Tax != nil {
		tax = *line.Tax
	}
	return discount, tax
}

// parseInvoiceDate acepta 2006-01-02; vacío = hoy.
func parseInvoiceDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return date, nil
}

func toInvoiceResponse(inv *entity.Invoice, counterpartyName string, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:               inv.ID,
		Type:             inv.Type,
		Number:           inv.Number,
		Status:           inv.Status,
		WarehouseID:      inv.WarehouseID,
		CounterpartyID:   inv.CounterpartyID,
		CounterpartyName: counterpartyName,
		Date:             inv.Date.Format("2006-01-02"),
		PaymentTerms:     inv.PaymentTerms,
		Total:            inv.Total,
		Items:            make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitValue: it.UnitValue,
			Discount:  it.Discount,
			Tax:       it.Tax,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
