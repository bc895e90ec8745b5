package entity

import "time"

// Roles de tercero. Una factura de venta referencia un CUSTOMER;
// una de compra, un SUPPLIER.
const (
	CounterpartyRoleCustomer = "CUSTOMER"
	CounterpartyRoleSupplier = "SUPPLIER"
)

// Counterparty representa el tercero de una factura: cliente o proveedor.
type Counterparty struct {
	ID        string
	Role      string // CUSTOMER | SUPPLIER
	Name      string
	TaxID     string // NIT o cédula
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
