package money

import (
	"errors"
	"strings"

	pkgerrors "github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrUnparseablePrice = errors.New("unparseable price")

// Parser reads free-text price labels such as "Bs 1.234,50" written with the
// separators of its locale.
type Parser struct {
	group   string
	decimal string
}

func NewParser(locale Locale) Parser {
	return Parser{group: locale.GroupSeparator, decimal: locale.DecimalSeparator}
}

// DefaultParser reads es-BO labels: "." groups thousands, "," marks decimals.
func DefaultParser() Parser {
	return NewParser(LocaleBolivia)
}

// ParseDecimal keeps digits and separators, drops every group separator and
// turns the first decimal separator into a point. Anything that is not a valid
// number afterwards is rejected.
func (p Parser) ParseDecimal(text string) (decimal.Decimal, error) {
	var kept strings.Builder
	for _, r := range text {
		if isASCIIDigit(r) || strings.ContainsRune(p.group, r) || strings.ContainsRune(p.decimal, r) {
			kept.WriteRune(r)
		}
	}

	normalized := kept.String()
	if p.group != "" {
		normalized = strings.ReplaceAll(normalized, p.group, "")
	}
	if p.decimal != "" && p.decimal != "." {
		normalized = strings.Replace(normalized, p.decimal, ".", 1)
	}

	if normalized == "" || strings.IndexFunc(normalized, isASCIIDigit) < 0 {
		return decimal.Zero, unparseable(text)
	}

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, unparseable(text)
	}
	return value, nil
}

// Parse is ParseDecimal converted to float64.
func (p Parser) Parse(text string) (float64, error) {
	value, err := p.ParseDecimal(text)
	if err != nil {
		return 0, err
	}
	f, _ := value.Float64()
	return f, nil
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func unparseable(text string) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, ErrUnparseablePrice, "price label could not be parsed").
		WithDetails(map[string]any{"price_text": text})
}
