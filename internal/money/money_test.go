package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2.145, 2.15},
		{2.144, 2.14},
		{26.0, 26.0},
		{28.145, 28.15},
		{0.005, 0.01},
		{-0.005, -0.01},
		{1.999, 2.0},
		{0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Round(c.in), "Round(%v)", c.in)
	}
}

func TestLineAndTaxAreExact(t *testing.T) {
	// 7 * 2 = 14, 14 * 0.0825 = 1.155 exactly.
	line := Line(7, 2)
	assert.True(t, line.Equal(decimal.NewFromInt(14)))

	tax := Tax(line, 0.0825)
	assert.True(t, tax.Equal(decimal.RequireFromString("1.155")), "got %s", tax)
}

func TestRoundIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(-1e6, 1e6).Draw(t, "v")
		r := Round(v)
		assert.Equal(t, r, Round(r))
	})
}
