package pricing

import "strings"

type unitConversion struct {
	factor float64
	unit   string
}

var imperialConversions = map[string]unitConversion{
	"m":  {factor: 3.28084, unit: "ft"},
	"m2": {factor: 10.7639, unit: "ft²"},
	"m3": {factor: 35.3147, unit: "ft³"},
	"cm": {factor: 0.393701, unit: "in"},
	"kg": {factor: 2.20462, unit: "lb"},
	"l":  {factor: 0.264172, unit: "gal"},
}

// ConvertUnit converts a metric value for display under the given unit
// system. Only "imperial" converts; unknown units pass through unchanged.
// Estimators always work in metric and never call this.
func ConvertUnit(value float64, fromUnit, unitSystem string) (float64, string) {
	if unitSystem != "imperial" {
		return value, fromUnit
	}
	conv, ok := imperialConversions[strings.ToLower(fromUnit)]
	if !ok {
		return value, fromUnit
	}
	return value * conv.factor, conv.unit
}
