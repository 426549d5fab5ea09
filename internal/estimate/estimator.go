package estimate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

// ErrIncompleteInput means a required field is missing, not numeric, not
// finite or not greater than zero. No item is produced.
var ErrIncompleteInput = errors.New("incomplete input")

const (
	laborName = "Mão de Obra"
	laborUnit = "serviço"
)

// Estimator turns raw form values into priced line items.
type Estimator struct {
	catalog pricing.Catalog
	newID   func() string
}

type Option func(*Estimator)

// WithCatalog replaces the default price catalog.
func WithCatalog(c pricing.Catalog) Option {
	return func(e *Estimator) {
		e.catalog = c
	}
}

// WithIDGenerator replaces the uuid-based item id generator.
func WithIDGenerator(f func() string) Option {
	return func(e *Estimator) {
		e.newID = f
	}
}

func New(opts ...Option) *Estimator {
	e := &Estimator{
		catalog: pricing.DefaultCatalog(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the price catalog in use.
func (e *Estimator) Catalog() pricing.Catalog {
	return e.catalog
}

func incomplete(field string) error {
	return fmt.Errorf("%w: %s", ErrIncompleteInput, field)
}

// parseNumber parses a form value. A comma is accepted as decimal separator.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parsePositive(field, raw string) (float64, error) {
	v, ok := parseNumber(raw)
	if !ok || v <= 0 {
		return 0, incomplete(field)
	}
	return v, nil
}

// parsePositiveOr is parsePositive with a form default for an empty field.
func parsePositiveOr(field, raw, fallback string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		raw = fallback
	}
	return parsePositive(field, raw)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func describe(custom, fallback string) string {
	if strings.TrimSpace(custom) == "" {
		return fallback
	}
	return custom
}

func (e *Estimator) line(m pricing.Material, quantity float64) MaterialLine {
	item := e.catalog.Item(m)
	return MaterialLine{Name: item.Name, Quantity: quantity, Unit: item.Unit, UnitPrice: item.UnitPrice}
}

// withLabor appends the labor line when raw is a positive finite number.
// Anything else is silently ignored.
func withLabor(materials []MaterialLine, raw string) []MaterialLine {
	labor, ok := parseNumber(raw)
	if !ok || labor <= 0 {
		return materials
	}
	return append(materials, MaterialLine{Name: laborName, Quantity: 1, Unit: laborUnit, UnitPrice: labor})
}

// newItem assembles the line item. Each dimension is already positive, but
// their product can still underflow to 0 or overflow to +Inf, so quantity and
// the derived prices are checked again before dividing.
func (e *Estimator) newItem(c Category, description, field string, quantity float64, unit string, materials []MaterialLine) (CalculationItem, error) {
	if !finite(quantity) || quantity <= 0 {
		return CalculationItem{}, incomplete(field)
	}
	total := SumMaterials(materials)
	if !finite(total) {
		return CalculationItem{}, incomplete(field)
	}
	unitPrice := total / quantity
	if !finite(unitPrice) {
		return CalculationItem{}, incomplete(field)
	}
	return CalculationItem{
		ID:          e.newID(),
		Type:        c.Label(),
		Description: description,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Materials:   materials,
		Total:       total,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
