package dto

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address,omitempty" validate:"omitempty,max=250"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses/:id.
type UpdateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address,omitempty" validate:"omitempty,max=250"`
	Active  *bool  `json:"active,omitempty"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}
