// internal/catalog/guardrail.go
package catalog

import (
	"fmt"

	"tapline/internal/money"
	"tapline/internal/store"
)

// GuardrailViolation reports a proposed price outside an item's
// [MinPrice, MaxPrice] band, naming the violated bound and the margin.
type GuardrailViolation struct {
	ItemID string
	Reason string
}

func (e *GuardrailViolation) Error() string {
	return fmt.Sprintf("price guardrail violated for item %q: %s", e.ItemID, e.Reason)
}

// ValidatePrice accepts or rejects newPrice against item's bounds.
// Bounds are inclusive. When override is true the check always passes.
// Pure function; no side effects.
func ValidatePrice(item *store.Item, newPrice float64, override bool) error {
	if override {
		return nil
	}
	if newPrice < item.MinPrice {
		return &GuardrailViolation{
			ItemID: item.ID,
			Reason: fmt.Sprintf("%.2f is below minPrice=%g by %.2f", newPrice, item.MinPrice, money.Round(item.MinPrice-newPrice)),
		}
	}
	if newPrice > item.MaxPrice {
		return &GuardrailViolation{
			ItemID: item.ID,
			Reason: fmt.Sprintf("%.2f is above maxPrice=%g by %.2f", newPrice, item.MaxPrice, money.Round(newPrice-item.MaxPrice)),
		}
	}
	return nil
}
