// internal/ordering/calculator.go
package ordering

import (
	"github.com/shopspring/decimal"

	"tapline/internal/money"
	"tapline/internal/store"
)

// ComputeTotals resolves the requested lines against a catalog
// snapshot and produces captured order lines plus aggregate totals.
//
// A line referencing an absent item aborts the whole computation with
// a NotFoundError naming the id; partial totals are never returned.
// Subtotal, tax and total are each rounded independently from the
// exact unrounded sums, so per-line rounding never compounds at the
// aggregate level. Per-line subtotals returned for display ARE
// rounded.
//
// Callers validate that lines is non-empty and quantities are
// positive before invoking.
func ComputeTotals(lines []LineRequest, snapshot map[string]store.Item) ([]store.OrderLine, Totals, error) {
	var (
		captured = make([]store.OrderLine, 0, len(lines))
		subtotal decimal.Decimal
		tax      decimal.Decimal
	)

	for _, line := range lines {
		item, ok := snapshot[line.ItemID]
		if !ok {
			return nil, Totals{}, &store.NotFoundError{Entity: "item", ID: line.ItemID}
		}

		lineSubtotal := money.Line(item.Price, line.Quantity)
		subtotal = subtotal.Add(lineSubtotal)
		tax = tax.Add(money.Tax(lineSubtotal, item.TaxRate))

		captured = append(captured, store.OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  line.Quantity,
			Subtotal:  money.RoundDecimal(lineSubtotal),
		})
	}

	totals := Totals{
		Subtotal: money.RoundDecimal(subtotal),
		Tax:      money.RoundDecimal(tax),
		Total:    money.RoundDecimal(subtotal.Add(tax)),
	}
	return captured, totals, nil
}
