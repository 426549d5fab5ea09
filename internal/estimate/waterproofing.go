package estimate

import (
	"fmt"
	"math"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

// WaterproofingInput is the waterproofing calculator form. It has no labor
// field: this calculator never adds a labor line.
type WaterproofingInput struct {
	Area        string
	Product     WaterproofProduct
	Description string
}

// Waterproofing prices the product by its coverage and one litre of primer
// per 10 m².
func (e *Estimator) Waterproofing(in WaterproofingInput) (CalculationItem, error) {
	area, err := parsePositive("area", in.Area)
	if err != nil {
		return CalculationItem{}, err
	}
	product, coverage, ok := in.Product.factors()
	if !ok {
		return CalculationItem{}, incomplete("type")
	}

	materials := []MaterialLine{
		e.line(product, math.Ceil(area/coverage)),
		e.line(pricing.WaterproofPrimer, math.Ceil(area/10)),
	}

	desc := describe(in.Description, fmt.Sprintf("Impermeabilização %sm²", formatNumber(area)))
	return e.newItem(CategoryWaterproofing, desc, "area", area, "m²", materials)
}
