package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/pkg/errors"
)

// Sources a product can be opened from.
const (
	SourceProduct = "product"
	SourceGallery = "gallery"
)

// Gallery images are sold at a flat price under a fixed style.
const (
	GalleryPrice = 199
	GalleryStyle = "Inspiración"
)

// Product is one product card (or gallery image) found on the page.
type Product struct {
	Position  int     `json:"position"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PriceText string  `json:"price_text,omitempty"`
	Style     string  `json:"style"`
	Src       string  `json:"src"`
	Source    string  `json:"source"`

	// text is the lower-cased text content of the card, used by search.
	text string
	err  error
}

// Err reports why the product cannot be added to a cart, if anything.
func (p Product) Err() error { return p.err }

// Input converts the product into a cart addition.
func (p Product) Input() (cart.ProductInput, error) {
	if p.err != nil {
		return cart.ProductInput{}, p.err
	}
	return cart.ProductInput{Name: p.Name, Price: p.Price, Style: p.Style, Src: p.Src}, nil
}

// MatchesQuery reports whether the card text contains q after trimming and
// lower-casing. An empty query matches every card.
func (p Product) MatchesQuery(q string) bool {
	q = NormalizeQuery(q)
	return q == "" || strings.Contains(p.text, q)
}

// MatchesStyle reports whether the card is visible under the given filter.
func (p Product) MatchesStyle(filter string) bool {
	filter = NormalizeFilter(filter)
	return filter == FilterAll || strings.ToLower(p.Style) == filter
}

// FilterAll shows every card.
const FilterAll = "all"

func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// NormalizeFilter lower-cases a filter tag; an empty tag means FilterAll.
func NormalizeFilter(tag string) string {
	tag = strings.ToLower(tag)
	if tag == "" {
		return FilterAll
	}
	return tag
}

// CategoryCard is a shortcut tile that applies a style filter when activated.
type CategoryCard struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Issue describes a card that was found but cannot be sold as is.
type Issue struct {
	Position int    `json:"position"`
	Source   string `json:"source"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

func issueFor(p Product) Issue {
	issue := Issue{Position: p.Position, Source: p.Source, Code: string(errors.CodeInternal), Message: p.err.Error()}
	if typed := errors.As(p.err); typed != nil {
		issue.Code = string(typed.Code())
		issue.Message = typed.Message()
	}
	return issue
}

// Page is the result of scanning one storefront document.
type Page struct {
	Products   []Product      `json:"products"`
	Gallery    []Product      `json:"gallery"`
	Categories []CategoryCard `json:"categories"`
	Issues     []Issue        `json:"issues"`
}

// Err combines the errors of every card that cannot be added to a cart.
func (p Page) Err() error {
	var errs error
	for _, prod := range p.Products {
		if prod.err != nil {
			errs = multierr.Append(errs, fmt.Errorf("product card %d: %w", prod.Position, prod.err))
		}
	}
	return errs
}
