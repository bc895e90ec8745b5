package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWeightedAverageCost(t *testing.T) {
	cases := []struct {
		name                       string
		stock, cost, inQty, inCost string
		want                       string
	}{
		{"primera entrada fija el costo", "0", "0", "20", "3.00", "3"},
		{"promedio simple mitad y mitad", "10", "2", "10", "4", "3"},
		{"entrada pequeña mueve poco el promedio", "90", "10", "10", "20", "11"},
		{"denominador no positivo devuelve cero", "-10", "10", "10", "4", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.WeightedAverageCost(d(tc.stock), d(tc.cost), d(tc.inQty), d(tc.inCost))
			assert.True(t, got.Equal(d(tc.want)), "esperado %s, fue %s", tc.want, got)
		})
	}
}
