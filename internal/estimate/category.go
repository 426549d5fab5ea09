package estimate

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown material category")

// Category is one of the seven material calculators.
type Category string

const (
	CategoryMasonry       Category = "masonry"
	CategoryConcrete      Category = "concrete"
	CategoryFlooring      Category = "flooring"
	CategoryPainting      Category = "painting"
	CategoryRoofing       Category = "roofing"
	CategoryPlaster       Category = "plaster"
	CategoryWaterproofing Category = "waterproofing"
)

var categoryLabels = map[Category]string{
	CategoryMasonry:       "Alvenaria",
	CategoryConcrete:      "Concreto",
	CategoryFlooring:      "Piso",
	CategoryPainting:      "Pintura",
	CategoryRoofing:       "Cobertura",
	CategoryPlaster:       "Reboco",
	CategoryWaterproofing: "Impermeabilização",
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryMasonry,
		CategoryConcrete,
		CategoryFlooring,
		CategoryPainting,
		CategoryRoofing,
		CategoryPlaster,
		CategoryWaterproofing,
	}
}

// ParseCategory resolves a category slug. "waterproof" is accepted as an alias.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "waterproof" {
		c = CategoryWaterproofing
	}
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Label is the value stored in CalculationItem.Type.
func (c Category) Label() string {
	return categoryLabels[c]
}

// SupportsLabor reports whether the category accepts an optional labor line.
// Waterproofing is the only one that does not.
func (c Category) SupportsLabor() bool {
	return c != CategoryWaterproofing
}
