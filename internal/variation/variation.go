// internal/variation/variation.go
package variation

import (
	"fmt"
)

// Attribute is a named axis of product customization with an ordered set
// of allowed values.
type Attribute struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Variation is one concrete combination of attribute values with its
// optional overrides. A nil PriceCents inherits the product base price;
// zero is a real override.
type Variation struct {
	ID         uint              `json:"id"`
	Attributes map[string]string `json:"attributes"`
	PriceCents *int64            `json:"price_cents,omitempty"`
	Stock      int               `json:"stock"`
	SKU        string            `json:"sku,omitempty"`
	Images     []string          `json:"images,omitempty"`
}

// ProductInfo carries the base values variations fall back to.
type ProductInfo struct {
	BasePriceCents int64
	Stock          int
	TrackInventory bool
	Images         []string
}

// UnboundedStock is the effective stock reported for products that do
// not track inventory. It is never decremented.
const UnboundedStock = int(^uint(0) >> 1)

// ErrNoMatch is returned when a selection resolves to zero variations,
// or to more than one. Multiple matches mean duplicate attribute maps
// upstream; resolving to an arbitrary one would be wrong, so both cases
// are reported the same way.
type ErrNoMatch struct {
	Matches int
}

func (e *ErrNoMatch) Error() string {
	if e.Matches > 1 {
		return fmt.Sprintf("selection matches %d variations", e.Matches)
	}
	return "no variation matches the selection"
}

// ErrAttributeMismatch reports a variation whose attribute map references
// an attribute or value not declared on the product.
type ErrAttributeMismatch struct {
	VariationID uint
	Attribute   string
	Value       string
}

func (e *ErrAttributeMismatch) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("variation %d: value %q is not declared for attribute %q", e.VariationID, e.Value, e.Attribute)
	}
	return fmt.Sprintf("variation %d: attribute %q is not declared on the product", e.VariationID, e.Attribute)
}

// Resolve returns the unique variation whose attribute map equals the
// selection: same keys, same values, order-independent. Zero or multiple
// matches return ErrNoMatch.
func Resolve(selection map[string]string, variations []Variation) (*Variation, error) {
	var found *Variation
	matches := 0
	for i := range variations {
		if mapsEqual(variations[i].Attributes, selection) {
			found = &variations[i]
			matches++
		}
	}
	if matches != 1 {
		return nil, &ErrNoMatch{Matches: matches}
	}
	return found, nil
}

// EffectivePrice resolves the unit price: the variation override when
// present, the product base price otherwise. A zero override is a real
// price and must not fall through to the base.
func EffectivePrice(product ProductInfo, v *Variation) int64 {
	if v != nil && v.PriceCents != nil {
		return *v.PriceCents
	}
	return product.BasePriceCents
}

// EffectiveStock resolves available stock. Untracked inventory reports
// UnboundedStock; callers skip decrements entirely in that case.
func EffectiveStock(product ProductInfo, v *Variation) int {
	if !product.TrackInventory {
		return UnboundedStock
	}
	if v != nil {
		return v.Stock
	}
	return product.Stock
}

// EffectiveImages resolves the image list: the variation's when
// non-empty, the product's otherwise.
func EffectiveImages(product ProductInfo, v *Variation) []string {
	if v != nil && len(v.Images) > 0 {
		return v.Images
	}
	return product.Images
}

// InStock reports whether a requested quantity is available.
func InStock(product ProductInfo, v *Variation, quantity int) bool {
	return quantity <= EffectiveStock(product, v)
}

// GenerateCombinations produces the Cartesian product of the attributes'
// value lists, one map per combination. Attributes iterate in declared
// order with the first attribute outermost, so the last attribute cycles
// fastest. The ordering is stable for a given input.
func GenerateCombinations(attributes []Attribute) []map[string]string {
	if len(attributes) == 0 {
		return nil
	}

	combinations := []map[string]string{{}}
	for _, attr := range attributes {
		if len(attr.Values) == 0 {
			return nil
		}
		next := make([]map[string]string, 0, len(combinations)*len(attr.Values))
		for _, partial := range combinations {
			for _, value := range attr.Values {
				combo := make(map[string]string, len(partial)+1)
				for k, v := range partial {
					combo[k] = v
				}
				combo[attr.Name] = value
				next = append(next, combo)
			}
		}
		combinations = next
	}
	return combinations
}

// ValidateAgainst checks every variation's attribute map against the
// product's declared attributes: exactly one entry per declared
// attribute, each value a member of that attribute's value list, and no
// two variations sharing an identical map.
func ValidateAgainst(attributes []Attribute, variations []Variation) error {
	declared := make(map[string]map[string]bool, len(attributes))
	for _, attr := range attributes {
		values := make(map[string]bool, len(attr.Values))
		for _, v := range attr.Values {
			values[v] = true
		}
		declared[attr.Name] = values
	}

	for i := range variations {
		v := &variations[i]
		for _, attr := range attributes {
			if _, ok := v.Attributes[attr.Name]; !ok {
				return &ErrAttributeMismatch{VariationID: v.ID, Attribute: attr.Name}
			}
		}
		for name, value := range v.Attributes {
			values, ok := declared[name]
			if !ok {
				return &ErrAttributeMismatch{VariationID: v.ID, Attribute: name}
			}
			if !values[value] {
				return &ErrAttributeMismatch{VariationID: v.ID, Attribute: name, Value: value}
			}
		}
		for j := i + 1; j < len(variations); j++ {
			if mapsEqual(v.Attributes, variations[j].Attributes) {
				return fmt.Errorf("variations %d and %d have identical attributes", v.ID, variations[j].ID)
			}
		}
	}
	return nil
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
