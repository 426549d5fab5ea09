package estimate

import (
	"fmt"
	"math"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

const defaultCoats = "2"

// PaintingInput is the paint calculator form. Coats defaults to 2 when empty
// and any fractional part is dropped.
type PaintingInput struct {
	Area        string
	Coats       string
	Paint       PaintType
	Description string
	LaborCost   string
}

// Painting prices paint for area × coats, one primer can per 12 m² and 0.2 kg
// of filler per m².
func (e *Estimator) Painting(in PaintingInput) (CalculationItem, error) {
	area, err := parsePositive("area", in.Area)
	if err != nil {
		return CalculationItem{}, err
	}
	coats, err := parsePositiveOr("coats", in.Coats, defaultCoats)
	if err != nil {
		return CalculationItem{}, err
	}
	coats = math.Trunc(coats)
	if coats < 1 {
		return CalculationItem{}, incomplete("coats")
	}
	paint, coverage, ok := in.Paint.factors()
	if !ok {
		return CalculationItem{}, incomplete("type")
	}

	effective := area * coats

	materials := []MaterialLine{
		e.line(paint, math.Ceil(effective/coverage)),
		e.line(pricing.Primer18L, math.Ceil(area/12)),
		e.line(pricing.WallFiller, math.Ceil(area*0.2)),
	}
	materials = withLabor(materials, in.LaborCost)

	desc := describe(in.Description, fmt.Sprintf("Pintura %sm²", formatNumber(area)))
	return e.newItem(CategoryPainting, desc, "area", area, "m²", materials)
}
