package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultSymbol = "Bs"

// Formatter renders amounts as "<symbol> <localized number>".
type Formatter struct {
	symbol string
	locale Locale
}

func NewFormatter(symbol string, locale Locale) Formatter {
	if strings.TrimSpace(symbol) == "" {
		symbol = DefaultSymbol
	}
	return Formatter{symbol: symbol, locale: locale}
}

// DefaultFormatter formats bolivianos for es-BO.
func DefaultFormatter() Formatter {
	return NewFormatter(DefaultSymbol, LocaleBolivia)
}

func (f Formatter) Symbol() string { return f.symbol }

func (f Formatter) Locale() Locale { return f.locale }

// Format rounds half-up on the cent (round(amount*100)/100) and renders the
// result with the locale separators. Trailing fraction zeros are dropped.
// NaN and infinities are rendered verbatim; callers validate upstream.
func (f Formatter) Format(amount float64) string {
	return f.symbol + " " + f.Number(amount)
}

// Number renders the localized number without the currency symbol.
func (f Formatter) Number(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case math.IsInf(amount, 1):
		return "∞"
	case math.IsInf(amount, -1):
		return "-∞"
	}

	cents := math.Floor(amount*100 + 0.5)
	value := decimal.NewFromFloat(cents).Shift(-2)

	digits := f.locale.MaxFractionDigits
	if digits < 0 {
		digits = 0
	}
	raw := value.Abs().StringFixed(digits)

	intPart, fracPart, _ := strings.Cut(raw, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	var b strings.Builder
	if value.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(group(intPart, f.locale.GroupSeparator))
	if fracPart != "" {
		b.WriteString(f.locale.DecimalSeparator)
		b.WriteString(fracPart)
	}
	return b.String()
}

func group(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
