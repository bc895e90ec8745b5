package dto

// CreateCounterpartyRequest body para POST /api/counterparties.
type CreateCounterpartyRequest struct {
	Role  string `json:"role" validate:"required,oneof=CUSTOMER SUPPLIER"`
	Name  string `json:"name" validate:"required,max=120"`
	TaxID string `json:"tax_id,omitempty" validate:"omitempty,max=20"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// UpdateCounterpartyRequest body para PUT /api/counterparties/:id.
type UpdateCounterpartyRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	TaxID  string `json:"tax_id,omitempty" validate:"omitempty,max=20"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Active *bool  `json:"active,omitempty"`
}

// CounterpartyResponse tercero en respuestas.
type CounterpartyResponse struct {
	ID     string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	TaxID  string `json:"tax_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
}
