package estimate

import (
	"fmt"
	"math"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

// ConcreteInput is the slab calculator form. Dimensions are in metres.
type ConcreteInput struct {
	Length      string
	Width       string
	Thickness   string
	Description string
	LaborCost   string
}

// Concrete prices a slab per m³: 7 bags of cement, 0.6 m³ sand, 0.65 m³
// gravel and 80 kg of rebar.
func (e *Estimator) Concrete(in ConcreteInput) (CalculationItem, error) {
	length, err := parsePositive("length", in.Length)
	if err != nil {
		return CalculationItem{}, err
	}
	width, err := parsePositive("width", in.Width)
	if err != nil {
		return CalculationItem{}, err
	}
	thickness, err := parsePositive("thickness", in.Thickness)
	if err != nil {
		return CalculationItem{}, err
	}

	volume := length * width * thickness

	materials := []MaterialLine{
		e.line(pricing.Cement50kg, math.Ceil(volume*7)),
		e.line(pricing.SandMedium, volume*0.6),
		e.line(pricing.Gravel, volume*0.65),
		e.line(pricing.SteelCA50, volume*80),
	}
	materials = withLabor(materials, in.LaborCost)

	desc := describe(in.Description, fmt.Sprintf("Laje %sm x %sm x %sm",
		formatNumber(length), formatNumber(width), formatNumber(thickness)))
	return e.newItem(CategoryConcrete, desc, "volume", volume, "m³", materials)
}
