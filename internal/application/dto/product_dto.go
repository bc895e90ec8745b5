package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=40"`
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=500"`
	CategoryID  string          `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=500"`
	CategoryID  string          `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	Price       decimal.Decimal `json:"price"`
	Active      *bool           `json:"active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Active      bool            `json:"active"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Code     string `json:"code" validate:"required,max=40"`
	ParentID string `json:"parent_id,omitempty" validate:"omitempty,uuid4"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID string `json:"parent_id,omitempty"`
	Active   bool   `json:"active"`
}
