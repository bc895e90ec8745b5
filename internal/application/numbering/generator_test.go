package numbering_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/numbering"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// fakeSequenceRepo consecutivo en memoria por (docType, period).
type fakeSequenceRepo struct {
	vals map[string]int64
}

func (f *fakeSequenceRepo) Next(ctx context.Context, docType, period string) (int64, error) {
	if f.vals == nil {
		f.vals = map[string]int64{}
	}
	key := docType + "|" + period
	f.vals[key]++
	return f.vals[key], nil
}

func TestNextInTx_FormatoYConsecutivo(t *testing.T) {
	g := numbering.New(numbering.Config{})
	seq := &fakeSequenceRepo{}
	asOf := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	number, period, err := g.NextInTx(context.Background(), seq, entity.InvoiceTypeSale, asOf)
	require.NoError(t, err)
	assert.Equal(t, "FV-202501-0001", number)
	assert.Equal(t, "202501", period)

	number, _, err = g.NextInTx(context.Background(), seq, entity.InvoiceTypeSale, asOf)
	require.NoError(t, err)
	assert.Equal(t, "FV-202501-0002", number)
}

func TestNextInTx_PrefijosPorTipoYAlcancesIndependientes(t *testing.T) {
	g := numbering.New(numbering.Config{})
	seq := &fakeSequenceRepo{}
	asOf := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	sale, _, err := g.NextInTx(context.Background(), seq, entity.InvoiceTypeSale, asOf)
	require.NoError(t, err)
	purchase, _, err := g.NextInTx(context.Background(), seq, entity.InvoiceTypePurchase, asOf)
	require.NoError(t, err)

	// Ventas y compras numeran en alcances separados: ambos arrancan en 1.
	assert.Equal(t, "FV-202501-0001", sale)
	assert.Equal(t, "FC-202501-0001", purchase)
}

func TestNextInTx_ReinicioMensual(t *testing.T) {
	g := numbering.New(numbering.Config{})
	seq := &fakeSequenceRepo{}

	jan := time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC)
	feb := time.Date(2025, time.February, 1, 1, 0, 0, 0, time.UTC)

	n1, _, err := g.NextInTx(context.Background(), seq, entity.InvoiceTypeSale, jan)
	require.NoError(t, err)
	n2, _, err := g.NextInTx(context.Background(), seq, entity.InvoiceTypeSale, feb)
	require.NoError(t, err)

	assert.Equal(t, "FV-202501-0001", n1)
	assert.Equal(t, "FV-202502-0001", n2, "el cambio de mes reinicia el consecutivo")
}

func TestNextInTx_PadYPrefijosConfigurables(t *testing.T) {
	g := numbering.New(numbering.Config{SalePrefix: "VTA", Pad: 6})
	seq := &fakeSequenceRepo{}
	asOf := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	number, _, err := g.NextInTx(context.Background(), seq, entity.InvoiceTypeSale, asOf)
	require.NoError(t, err)
	assert.Equal(t, "VTA-202503-000001", number)
}

func TestNextInTx_TipoDesconocido(t *testing.T) {
	g := numbering.New(numbering.Config{})
	_, _, err := g.NextInTx(context.Background(), &fakeSequenceRepo{}, "NOTA_CREDITO", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
