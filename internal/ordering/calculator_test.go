package ordering

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"tapline/internal/store"
)

func barSnapshot() map[string]store.Item {
	return map[string]store.Item{
		"ipa":       {ID: "ipa", Name: "IPA", Price: 7, TaxRate: 0.0825},
		"margarita": {ID: "margarita", Name: "Margarita", Price: 12, TaxRate: 0.0825},
	}
}

func TestComputeTotalsBarTab(t *testing.T) {
	lines := []LineRequest{
		{ItemID: "ipa", Quantity: 2},
		{ItemID: "margarita", Quantity: 1},
	}

	captured, totals, err := ComputeTotals(lines, barSnapshot())
	require.NoError(t, err)

	// Raw tax is 26 * 0.0825 = 2.145, which rounds half away from
	// zero to 2.15, independently of the rounded per-line values.
	assert.Equal(t, 26.00, totals.Subtotal)
	assert.Equal(t, 2.15, totals.Tax)
	assert.Equal(t, 28.15, totals.Total)

	require.Len(t, captured, 2)
	assert.Equal(t, store.OrderLine{ItemID: "ipa", Name: "IPA", UnitPrice: 7, Quantity: 2, Subtotal: 14}, captured[0])
	assert.Equal(t, store.OrderLine{ItemID: "margarita", Name: "Margarita", UnitPrice: 12, Quantity: 1, Subtotal: 12}, captured[1])
}

func TestComputeTotalsMissingItemAbortsWhole(t *testing.T) {
	lines := []LineRequest{
		{ItemID: "ipa", Quantity: 1},
		{ItemID: "mystery", Quantity: 1},
	}

	captured, totals, err := ComputeTotals(lines, barSnapshot())

	var notFound *store.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "mystery", notFound.ID)

	// No partial result.
	assert.Nil(t, captured)
	assert.Equal(t, Totals{}, totals)
}

func TestComputeTotalsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "items")

		snapshot := make(map[string]store.Item, n)
		var lines []LineRequest
		rawSubtotal := decimal.Zero
		rawTax := decimal.Zero

		for i := 0; i < n; i++ {
			id := fmt.Sprintf("item-%d", i)
			price := rapid.Float64Range(0.01, 500).Draw(t, "price")
			taxRate := rapid.Float64Range(0, 0.25).Draw(t, "taxRate")
			qty := rapid.IntRange(1, 20).Draw(t, "qty")

			snapshot[id] = store.Item{ID: id, Name: id, Price: price, TaxRate: taxRate}
			lines = append(lines, LineRequest{ItemID: id, Quantity: qty})

			lineSub := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty)))
			rawSubtotal = rawSubtotal.Add(lineSub)
			rawTax = rawTax.Add(lineSub.Mul(decimal.NewFromFloat(taxRate)))
		}

		captured, totals, err := ComputeTotals(lines, snapshot)
		require.NoError(t, err)
		require.Len(t, captured, n)

		assert.Equal(t, rawSubtotal.Round(2).InexactFloat64(), totals.Subtotal)
		assert.Equal(t, rawTax.Round(2).InexactFloat64(), totals.Tax)
		assert.Equal(t, rawSubtotal.Add(rawTax).Round(2).InexactFloat64(), totals.Total)
	})
}
