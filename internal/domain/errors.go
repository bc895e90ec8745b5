package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrBusinessRule       = errors.New("regla de negocio violada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// NotFoundError identifica qué entidad y qué ID no se encontró.
// errors.Is(err, ErrNotFound) retorna true para mapear a HTTP 404.
type NotFoundError struct {
	Entity string // "warehouse", "product", "counterparty", "invoice"
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// BusinessRuleError representa una violación de regla de negocio con mensaje
// legible (referencia inactiva, estado inválido para anular, totales que no
// cuadran). errors.Is(err, ErrBusinessRule) retorna true.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

func (e *BusinessRuleError) Unwrap() error { return ErrBusinessRule }

// NewBusinessRule construye un BusinessRuleError con formato.
func NewBusinessRule(format string, args ...any) error {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError indica qué producto quedó sin stock suficiente.
// errors.Is retorna true tanto para ErrInsufficientStock como para ErrBusinessRule.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s", e.ProductID, e.WarehouseID)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock || target == ErrBusinessRule
}

// NewInsufficientStock construye un InsufficientStockError.
func NewInsufficientStock(productID, warehouseID string) error {
	return &InsufficientStockError{ProductID: productID, WarehouseID: warehouseID}
}
