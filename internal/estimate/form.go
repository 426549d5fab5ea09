package estimate

// Form is the flat set of raw field values a calculator form submits.
//
// Recognised keys: length, width, height, thickness, area, coats, type,
// tileSize, tilePrice, description, laborCost. Unknown keys are ignored.
type Form map[string]string

// Estimate runs the estimator for category c against the form values.
func (e *Estimator) Estimate(c Category, f Form) (CalculationItem, error) {
	switch c {
	case CategoryMasonry:
		brick, err := ParseBrickType(f["type"])
		if err != nil {
			return CalculationItem{}, err
		}
		return e.Masonry(MasonryInput{
			Length:      f["length"],
			Height:      f["height"],
			Brick:       brick,
			Description: f["description"],
			LaborCost:   f["laborCost"],
		})
	case CategoryConcrete:
		return e.Concrete(ConcreteInput{
			Length:      f["length"],
			Width:       f["width"],
			Thickness:   f["thickness"],
			Description: f["description"],
			LaborCost:   f["laborCost"],
		})
	case CategoryFlooring:
		size, err := ParseTileSize(f["tileSize"])
		if err != nil {
			return CalculationItem{}, err
		}
		return e.Flooring(FlooringInput{
			Length:      f["length"],
			Width:       f["width"],
			TileSize:    size,
			TilePrice:   f["tilePrice"],
			Description: f["description"],
			LaborCost:   f["laborCost"],
		})
	case CategoryPainting:
		paint, err := ParsePaintType(f["type"])
		if err != nil {
			return CalculationItem{}, err
		}
		return e.Painting(PaintingInput{
			Area:        f["area"],
			Coats:       f["coats"],
			Paint:       paint,
			Description: f["description"],
			LaborCost:   f["laborCost"],
		})
	case CategoryRoofing:
		tile, err := ParseRoofTileType(f["type"])
		if err != nil {
			return CalculationItem{}, err
		}
		return e.Roofing(RoofingInput{
			Length:      f["length"],
			Width:       f["width"],
			Tile:        tile,
			Description: f["description"],
			LaborCost:   f["laborCost"],
		})
	case CategoryPlaster:
		return e.Plaster(PlasterInput{
			Area:        f["area"],
			Thickness:   f["thickness"],
			Description: f["description"],
			LaborCost:   f["laborCost"],
		})
	case CategoryWaterproofing:
		product, err := ParseWaterproofProduct(f["type"])
		if err != nil {
			return CalculationItem{}, err
		}
		return e.Waterproofing(WaterproofingInput{
			Area:        f["area"],
			Product:     product,
			Description: f["description"],
		})
	default:
		parsed, err := ParseCategory(string(c))
		if err != nil {
			return CalculationItem{}, err
		}
		if parsed == c {
			return CalculationItem{}, ErrUnknownCategory
		}
		return e.Estimate(parsed, f)
	}
}
