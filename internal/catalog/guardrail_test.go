package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"tapline/internal/store"
)

func guardedItem() *store.Item {
	return &store.Item{ID: "ipa-1", Name: "IPA", Price: 7, MinPrice: 5, MaxPrice: 12}
}

func TestValidatePriceWithinBounds(t *testing.T) {
	assert.NoError(t, ValidatePrice(guardedItem(), 8.5, false))
}

func TestValidatePriceInclusiveBounds(t *testing.T) {
	item := guardedItem()
	assert.NoError(t, ValidatePrice(item, 5, false))
	assert.NoError(t, ValidatePrice(item, 12, false))
}

func TestValidatePriceBelowMin(t *testing.T) {
	err := ValidatePrice(guardedItem(), 3, false)
	var violation *GuardrailViolation
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, "minPrice=5")
	assert.Contains(t, violation.Reason, "by 2.00")
}

func TestValidatePriceAboveMax(t *testing.T) {
	err := ValidatePrice(guardedItem(), 15.25, false)
	var violation *GuardrailViolation
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, "maxPrice=12")
	assert.Contains(t, violation.Reason, "by 3.25")
}

func TestValidatePriceOverride(t *testing.T) {
	assert.NoError(t, ValidatePrice(guardedItem(), 3, true))
	assert.NoError(t, ValidatePrice(guardedItem(), 100, true))
}

func TestValidatePriceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		min := rapid.Float64Range(0, 100).Draw(t, "min")
		max := rapid.Float64Range(min, 200).Draw(t, "max")
		price := rapid.Float64Range(-50, 250).Draw(t, "price")

		item := &store.Item{ID: "x", MinPrice: min, MaxPrice: max}

		err := ValidatePrice(item, price, false)
		inBounds := price >= min && price <= max
		assert.Equal(t, inBounds, err == nil)

		// Override always passes.
		assert.NoError(t, ValidatePrice(item, price, true))
	})
}
