package estimate

import (
	"fmt"
	"strings"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

// Each selectable variant is a closed enumeration whose zero value is the
// form's default choice. Factor lookups go through a switch whose default arm
// reports the value as unknown.

// BrickType selects the masonry unit.
type BrickType int

const (
	BrickCeramic BrickType = iota
	BrickConcreteBlock
	BrickBaiano
)

func ParseBrickType(s string) (BrickType, error) {
	switch normalize(s) {
	case "", "ceramic":
		return BrickCeramic, nil
	case "concrete":
		return BrickConcreteBlock, nil
	case "baiano":
		return BrickBaiano, nil
	}
	return 0, incomplete("type")
}

func (b BrickType) String() string {
	switch b {
	case BrickCeramic:
		return "ceramic"
	case BrickConcreteBlock:
		return "concrete"
	case BrickBaiano:
		return "baiano"
	}
	return fmt.Sprintf("BrickType(%d)", int(b))
}

// factors returns the catalog material and units laid per m².
func (b BrickType) factors() (pricing.Material, float64, bool) {
	switch b {
	case BrickCeramic:
		return pricing.BrickCeramic, 13, true
	case BrickConcreteBlock:
		return pricing.BrickConcreteBlock, 12.5, true
	case BrickBaiano:
		return pricing.BrickBaiano, 25, true
	default:
		return "", 0, false
	}
}

// TileSize selects the floor tile format.
type TileSize int

const (
	Tile60x60 TileSize = iota
	Tile45x45
	Tile30x30
)

func ParseTileSize(s string) (TileSize, error) {
	switch normalize(s) {
	case "", "60x60":
		return Tile60x60, nil
	case "45x45":
		return Tile45x45, nil
	case "30x30":
		return Tile30x30, nil
	}
	return 0, incomplete("tileSize")
}

func (t TileSize) String() string {
	switch t {
	case Tile60x60:
		return "60x60"
	case Tile45x45:
		return "45x45"
	case Tile30x30:
		return "30x30"
	}
	return fmt.Sprintf("TileSize(%d)", int(t))
}

// area returns the face area of one tile in m².
func (t TileSize) area() (float64, bool) {
	switch t {
	case Tile60x60:
		return 0.36, true
	case Tile45x45:
		return 0.2025, true
	case Tile30x30:
		return 0.09, true
	default:
		return 0, false
	}
}

// PaintType selects the finish paint.
type PaintType int

const (
	PaintAcrylic PaintType = iota
	PaintLatex
	PaintEnamel
)

func ParsePaintType(s string) (PaintType, error) {
	switch normalize(s) {
	case "", "acrylic":
		return PaintAcrylic, nil
	case "latex":
		return PaintLatex, nil
	case "enamel":
		return PaintEnamel, nil
	}
	return 0, incomplete("type")
}

func (p PaintType) String() string {
	switch p {
	case PaintAcrylic:
		return "acrylic"
	case PaintLatex:
		return "latex"
	case PaintEnamel:
		return "enamel"
	}
	return fmt.Sprintf("PaintType(%d)", int(p))
}

// factors returns the catalog material and m² covered per can, per coat.
func (p PaintType) factors() (pricing.Material, float64, bool) {
	switch p {
	case PaintAcrylic:
		return pricing.PaintAcrylic, 10, true
	case PaintLatex:
		return pricing.PaintLatex, 12, true
	case PaintEnamel:
		return pricing.PaintEnamel, 8, true
	default:
		return "", 0, false
	}
}

// RoofTileType selects the roof covering.
type RoofTileType int

const (
	RoofCeramic RoofTileType = iota
	RoofConcrete
	RoofMetallic
)

func ParseRoofTileType(s string) (RoofTileType, error) {
	switch normalize(s) {
	case "", "ceramic":
		return RoofCeramic, nil
	case "concrete":
		return RoofConcrete, nil
	case "metallic":
		return RoofMetallic, nil
	}
	return 0, incomplete("type")
}

func (r RoofTileType) String() string {
	switch r {
	case RoofCeramic:
		return "ceramic"
	case RoofConcrete:
		return "concrete"
	case RoofMetallic:
		return "metallic"
	}
	return fmt.Sprintf("RoofTileType(%d)", int(r))
}

// factors returns the catalog material and pieces per m² of roof.
func (r RoofTileType) factors() (pricing.Material, float64, bool) {
	switch r {
	case RoofCeramic:
		return pricing.RoofCeramic, 16, true
	case RoofConcrete:
		return pricing.RoofConcrete, 10.5, true
	case RoofMetallic:
		return pricing.RoofMetallic, 1, true
	default:
		return "", 0, false
	}
}

// WaterproofProduct selects the waterproofing system.
type WaterproofProduct int

const (
	WaterproofAsphalt WaterproofProduct = iota
	WaterproofAcrylic
	WaterproofPolyurethane
)

func ParseWaterproofProduct(s string) (WaterproofProduct, error) {
	switch normalize(s) {
	case "", "asphalt":
		return WaterproofAsphalt, nil
	case "acrylic":
		return WaterproofAcrylic, nil
	case "polyurethane":
		return WaterproofPolyurethane, nil
	}
	return 0, incomplete("type")
}

func (w WaterproofProduct) String() string {
	switch w {
	case WaterproofAsphalt:
		return "asphalt"
	case WaterproofAcrylic:
		return "acrylic"
	case WaterproofPolyurethane:
		return "polyurethane"
	}
	return fmt.Sprintf("WaterproofProduct(%d)", int(w))
}

// factors returns the catalog material and m² covered per unit.
func (w WaterproofProduct) factors() (pricing.Material, float64, bool) {
	switch w {
	case WaterproofAsphalt:
		return pricing.WaterproofAsphalt, 1, true
	case WaterproofAcrylic:
		return pricing.WaterproofAcrylic, 4, true
	case WaterproofPolyurethane:
		return pricing.WaterproofPU, 3, true
	default:
		return "", 0, false
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
