package estimate

import (
	"fmt"
	"math"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

// FlooringInput is the floor tile calculator form. An empty TilePrice uses
// the catalog price for floor tiles.
type FlooringInput struct {
	Length      string
	Width       string
	TileSize    TileSize
	TilePrice   string
	Description string
	LaborCost   string
}

// Flooring prices a tiled floor with 10% tile waste, 0.3 bags of adhesive and
// 0.15 bags of grout per m².
func (e *Estimator) Flooring(in FlooringInput) (CalculationItem, error) {
	length, err := parsePositive("length", in.Length)
	if err != nil {
		return CalculationItem{}, err
	}
	width, err := parsePositive("width", in.Width)
	if err != nil {
		return CalculationItem{}, err
	}
	tile := e.catalog.Item(pricing.FloorTile)
	tilePrice, err := parsePositiveOr("tilePrice", in.TilePrice, formatNumber(tile.UnitPrice))
	if err != nil {
		return CalculationItem{}, err
	}
	tileArea, ok := in.TileSize.area()
	if !ok {
		return CalculationItem{}, incomplete("tileSize")
	}

	area := length * width

	materials := []MaterialLine{
		{
			Name:      fmt.Sprintf("%s %scm", tile.Name, in.TileSize),
			Quantity:  math.Ceil((area / tileArea) * 1.1),
			Unit:      tile.Unit,
			UnitPrice: tilePrice,
		},
		e.line(pricing.TileAdhesive, math.Ceil(area*0.3)),
		e.line(pricing.Grout, math.Ceil(area*0.15)),
	}
	materials = withLabor(materials, in.LaborCost)

	desc := describe(in.Description, fmt.Sprintf("Piso %sm x %sm", formatNumber(length), formatNumber(width)))
	return e.newItem(CategoryFlooring, desc, "area", area, "m²", materials)
}
