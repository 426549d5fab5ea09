package estimate

import (
	"fmt"
	"math"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

// MasonryInput is the wall calculator form.
type MasonryInput struct {
	Length      string
	Height      string
	Brick       BrickType
	Description string
	LaborCost   string
}

// Masonry prices a wall: bricks per m², 0.05 m³ of mortar per m², 7 bags of
// cement and 0.3 m³ of sand per m³ of mortar.
func (e *Estimator) Masonry(in MasonryInput) (CalculationItem, error) {
	length, err := parsePositive("length", in.Length)
	if err != nil {
		return CalculationItem{}, err
	}
	height, err := parsePositive("height", in.Height)
	if err != nil {
		return CalculationItem{}, err
	}
	brick, perM2, ok := in.Brick.factors()
	if !ok {
		return CalculationItem{}, incomplete("type")
	}

	area := length * height
	mortar := area * 0.05

	materials := []MaterialLine{
		e.line(brick, math.Ceil(area*perM2)),
		e.line(pricing.Cement50kg, math.Ceil(mortar*7)),
		e.line(pricing.Sand, mortar*0.3),
	}
	materials = withLabor(materials, in.LaborCost)

	desc := describe(in.Description, fmt.Sprintf("Parede %sm x %sm", formatNumber(length), formatNumber(height)))
	return e.newItem(CategoryMasonry, desc, "area", area, "m²", materials)
}
