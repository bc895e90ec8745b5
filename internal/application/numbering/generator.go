package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Config prefijos y ancho del consecutivo.
type Config struct {
	SalePrefix     string // FV
	PurchasePrefix string // FC
	Pad            int    // dígitos con ceros a la izquierda
}

// Generator asigna números de factura con alcance (tipo, periodo AAAAMM):
// FV-202501-0001, FC-202501-0001. El primer documento de cada mes reinicia el
// consecutivo en 1. La unicidad bajo concurrencia la garantiza
// SequenceRepository.Next (incremento atómico en DB); este servicio solo
// deriva el periodo y da formato.
type Generator struct {
	cfg Config
}

// New construye el generador; aplica valores por defecto FV/FC y 4 dígitos.
func New(cfg Config) *Generator {
	if cfg.SalePrefix == "" {
		cfg.SalePrefix = "FV"
	}
	if cfg.PurchasePrefix == "" {
		cfg.PurchasePrefix = "FC"
	}
	if cfg.Pad <= 0 {
		cfg.Pad = 4
	}
	return &Generator{cfg: cfg}
}

// Period deriva la clave de periodo mensual (AAAAMM) de una fecha.
func (g *Generator) Period(asOf time.Time) string {
	return asOf.Format("200601")
}

// NextInTx asigna el siguiente número dentro de la transacción del caller:
// el lock de fila del upsert del consecutivo serializa a los asignadores
// concurrentes del mismo (tipo, periodo) hasta el commit.
func (g *Generator) NextInTx(ctx context.Context, seqRepo repository.SequenceRepository, docType string, asOf time.Time) (number, period string, err error) {
	prefix, err := g.prefixFor(docType)
	if err != nil {
		return "", "", err
	}
	period = g.Period(asOf)
	seq, err := seqRepo.Next(ctx, docType, period)
	if err != nil {
		return "", "", fmt.Errorf("siguiente consecutivo %s-%s: %w", docType, period, err)
	}
	return g.format(prefix, period, seq), period, nil
}

func (g *Generator) prefixFor(docType string) (string, error) {
	switch docType {
	case entity.InvoiceTypeSale:
		return g.cfg.SalePrefix, nil
	case entity.InvoiceTypePurchase:
		return g.cfg.PurchasePrefix, nil
	}
	return "", domain.ErrInvalidInput
}

func (g *Generator) format(prefix, period string, seq int64) string {
	return fmt.Sprintf("%s-%s-%0*d", prefix, period, g.cfg.Pad, seq)
}
