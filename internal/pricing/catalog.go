package pricing

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrNegativePrice   = errors.New("negative unit price")
)

// Material identifies one purchasable item in the price catalog.
type Material string

const (
	Cement50kg         Material = "cement_50kg"
	Sand               Material = "sand"
	SandMedium         Material = "sand_medium"
	SandFine           Material = "sand_fine"
	Gravel             Material = "gravel"
	SteelCA50          Material = "steel_ca50"
	BrickCeramic       Material = "brick_ceramic"
	BrickConcreteBlock Material = "brick_concrete_block"
	BrickBaiano        Material = "brick_baiano"
	FloorTile          Material = "floor_tile"
	TileAdhesive       Material = "tile_adhesive"
	Grout              Material = "grout"
	PaintAcrylic       Material = "paint_acrylic"
	PaintLatex         Material = "paint_latex"
	PaintEnamel        Material = "paint_enamel"
	Primer18L          Material = "primer_18l"
	WallFiller         Material = "wall_filler"
	RoofCeramic        Material = "roof_ceramic"
	RoofConcrete       Material = "roof_concrete"
	RoofMetallic       Material = "roof_metallic"
	RoofTimber         Material = "roof_timber"
	Fasteners          Material = "fasteners"
	Lime               Material = "lime"
	WaterproofAsphalt  Material = "wp_asphalt"
	WaterproofAcrylic  Material = "wp_acrylic"
	WaterproofPU       Material = "wp_polyurethane"
	WaterproofPrimer   Material = "wp_primer"
)

// Item is the catalog entry for a material: display label, unit of measure and
// the default unit price.
type Item struct {
	Name      string
	Unit      string
	UnitPrice float64
}

// Catalog maps materials to their catalog entries. The zero value is empty;
// use DefaultCatalog.
type Catalog struct {
	items map[Material]Item
}

var defaultItems = map[Material]Item{
	Cement50kg:         {Name: "Cimento (50kg)", Unit: "saco", UnitPrice: 35.00},
	Sand:               {Name: "Areia", Unit: "m³", UnitPrice: 80.00},
	SandMedium:         {Name: "Areia Média", Unit: "m³", UnitPrice: 80.00},
	SandFine:           {Name: "Areia Fina", Unit: "m³", UnitPrice: 85.00},
	Gravel:             {Name: "Brita", Unit: "m³", UnitPrice: 90.00},
	SteelCA50:          {Name: "Aço CA-50", Unit: "kg", UnitPrice: 7.50},
	BrickCeramic:       {Name: "Tijolo Cerâmico 6 furos", Unit: "un", UnitPrice: 0.85},
	BrickConcreteBlock: {Name: "Bloco de Concreto", Unit: "un", UnitPrice: 2.50},
	BrickBaiano:        {Name: "Tijolo Baiano", Unit: "un", UnitPrice: 0.65},
	FloorTile:          {Name: "Porcelanato", Unit: "un", UnitPrice: 45.00},
	TileAdhesive:       {Name: "Argamassa Colante", Unit: "saco", UnitPrice: 28.00},
	Grout:              {Name: "Rejunte", Unit: "saco", UnitPrice: 18.00},
	PaintAcrylic:       {Name: "Tinta Acrílica (18L)", Unit: "lata", UnitPrice: 85.00},
	PaintLatex:         {Name: "Tinta Látex (18L)", Unit: "lata", UnitPrice: 65.00},
	PaintEnamel:        {Name: "Esmalte Sintético (18L)", Unit: "lata", UnitPrice: 95.00},
	Primer18L:          {Name: "Selador/Primer (18L)", Unit: "lata", UnitPrice: 55.00},
	WallFiller:         {Name: "Massa Corrida", Unit: "kg", UnitPrice: 8.50},
	RoofCeramic:        {Name: "Telha Cerâmica", Unit: "un", UnitPrice: 3.50},
	RoofConcrete:       {Name: "Telha de Concreto", Unit: "un", UnitPrice: 5.20},
	RoofMetallic:       {Name: "Telha Metálica", Unit: "un", UnitPrice: 35.00},
	RoofTimber:         {Name: "Madeira (caibros/ripas)", Unit: "m", UnitPrice: 12.00},
	Fasteners:          {Name: "Pregos/Parafusos", Unit: "kg", UnitPrice: 18.00},
	Lime:               {Name: "Cal Hidratada", Unit: "saco", UnitPrice: 12.00},
	WaterproofAsphalt:  {Name: "Manta Asfáltica", Unit: "m²", UnitPrice: 28.00},
	WaterproofAcrylic:  {Name: "Impermeabilizante Acrílico", Unit: "m²", UnitPrice: 45.00},
	WaterproofPU:       {Name: "Poliuretano", Unit: "m²", UnitPrice: 65.00},
	WaterproofPrimer:   {Name: "Primer/Fundo", Unit: "L", UnitPrice: 35.00},
}

// DefaultCatalog returns the built-in price catalog.
func DefaultCatalog() Catalog {
	items := make(map[Material]Item, len(defaultItems))
	for k, v := range defaultItems {
		items[k] = v
	}
	return Catalog{items: items}
}

// Item returns the catalog entry for m. Unknown materials yield a zero Item.
func (c Catalog) Item(m Material) Item {
	return c.items[m]
}

// Has reports whether m is part of the catalog.
func (c Catalog) Has(m Material) bool {
	_, ok := c.items[m]
	return ok
}

// Materials lists the catalog keys in lexical order.
func (c Catalog) Materials() []Material {
	out := make([]Material, 0, len(c.items))
	for k := range c.items {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WithPrices returns a copy of the catalog with unit prices replaced. Labels and
// units never change. Every key must already exist and prices must be >= 0.
func (c Catalog) WithPrices(prices map[Material]float64) (Catalog, error) {
	items := make(map[Material]Item, len(c.items))
	for k, v := range c.items {
		items[k] = v
	}
	for m, price := range prices {
		item, ok := items[m]
		if !ok {
			return Catalog{}, fmt.Errorf("%w: %s", ErrUnknownMaterial, m)
		}
		if price < 0 {
			return Catalog{}, fmt.Errorf("%w: %s=%v", ErrNegativePrice, m, price)
		}
		item.UnitPrice = price
		items[m] = item
	}
	return Catalog{items: items}, nil
}
