package estimate

import (
	"fmt"
	"math"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

// roofSlopeAllowance inflates the plan area to the sloped roof area.
const roofSlopeAllowance = 1.15

// RoofingInput is the roof calculator form; Length and Width are the plan
// dimensions.
type RoofingInput struct {
	Length      string
	Width       string
	Tile        RoofTileType
	Description string
	LaborCost   string
}

// Roofing prices the roof covering, 4 linear metres of timber and 0.1 kg of
// fasteners per sloped m².
func (e *Estimator) Roofing(in RoofingInput) (CalculationItem, error) {
	length, err := parsePositive("length", in.Length)
	if err != nil {
		return CalculationItem{}, err
	}
	width, err := parsePositive("width", in.Width)
	if err != nil {
		return CalculationItem{}, err
	}
	tile, perM2, ok := in.Tile.factors()
	if !ok {
		return CalculationItem{}, incomplete("type")
	}

	area := length * width * roofSlopeAllowance

	materials := []MaterialLine{
		e.line(tile, math.Ceil(area*perM2)),
		e.line(pricing.RoofTimber, area*4),
		e.line(pricing.Fasteners, math.Ceil(area/10)),
	}
	materials = withLabor(materials, in.LaborCost)

	desc := describe(in.Description, fmt.Sprintf("Telhado %sm x %sm", formatNumber(length), formatNumber(width)))
	return e.newItem(CategoryRoofing, desc, "area", area, "m²", materials)
}
