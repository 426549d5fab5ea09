package estimate

import (
	"fmt"
	"math"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

const defaultPlasterThicknessCM = "2"

// PlasterInput is the render calculator form. Thickness is in centimetres and
// defaults to 2 when empty.
type PlasterInput struct {
	Area        string
	Thickness   string
	Description string
	LaborCost   string
}

// Plaster prices a render coat by volume: 5 bags of cement and 0.3 m³ of fine
// sand per m³, plus 0.05 bags of lime per m² of wall.
func (e *Estimator) Plaster(in PlasterInput) (CalculationItem, error) {
	area, err := parsePositive("area", in.Area)
	if err != nil {
		return CalculationItem{}, err
	}
	thickness, err := parsePositiveOr("thickness", in.Thickness, defaultPlasterThicknessCM)
	if err != nil {
		return CalculationItem{}, err
	}

	volume := area * (thickness / 100)

	materials := []MaterialLine{
		e.line(pricing.Cement50kg, math.Ceil(volume*5)),
		e.line(pricing.SandFine, volume*0.3),
		e.line(pricing.Lime, math.Ceil(area*0.05)),
	}
	materials = withLabor(materials, in.LaborCost)

	desc := describe(in.Description, fmt.Sprintf("Reboco %sm²", formatNumber(area)))
	return e.newItem(CategoryPlaster, desc, "volume", volume, "m³", materials)
}
