package estimate

// MaterialLine is one material consumed by a line item.
type MaterialLine struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
}

// Cost returns Quantity * UnitPrice.
func (m MaterialLine) Cost() float64 {
	return m.Quantity * m.UnitPrice
}

// CalculationItem is one priced estimate for a material category, with its
// own material breakdown. Total is always the sum of the material costs and
// UnitPrice is Total / Quantity.
type CalculationItem struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Quantity    float64        `json:"quantity"`
	Unit        string         `json:"unit"`
	UnitPrice   float64        `json:"unitPrice"`
	Materials   []MaterialLine `json:"materials"`
	Total       float64        `json:"total"`
}

// Clone returns a deep copy of the item.
func (c CalculationItem) Clone() CalculationItem {
	out := c
	out.Materials = make([]MaterialLine, len(c.Materials))
	copy(out.Materials, c.Materials)
	return out
}

// CloneItems deep-copies a list of items. The result is never nil.
func CloneItems(items []CalculationItem) []CalculationItem {
	out := make([]CalculationItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// SumMaterials adds up the cost of each line in order.
func SumMaterials(materials []MaterialLine) float64 {
	total := 0.0
	for _, m := range materials {
		total += m.Cost()
	}
	return total
}

// SumItems adds up item totals in order.
func SumItems(items []CalculationItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Total
	}
	return total
}
