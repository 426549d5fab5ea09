package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
	"ARS": "ARS",
	"UYU": "UYU",
}

// CurrencySymbol returns the display symbol for a currency code, or the code
// itself when it is not in the table.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}

// FormatCurrency renders value as "<symbol> 1.234,56". Only display rounding
// happens here; no conversion between currencies is performed. NaN and ±Inf
// are printed as is.
func FormatCurrency(value float64, code string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return CurrencySymbol(code) + " " + strconv.FormatFloat(value, 'f', -1, 64)
	}
	fixed := decimal.NewFromFloat(value).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(CurrencySymbol(code))
	b.WriteByte(' ')
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
