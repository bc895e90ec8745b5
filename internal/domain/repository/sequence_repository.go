package repository

import "context"

// SequenceRepository define el puerto del consecutivo de facturación por
// (tipo de documento, periodo AAAAMM). Next debe ser un incremento atómico en
// la base de datos: dos llamadas concurrentes sobre el mismo alcance nunca
// pueden devolver el mismo valor. Jamás implementar como leer-e-insertar.
type SequenceRepository interface {
	Next(ctx context.Context, docType, period string) (int64, error)
}
