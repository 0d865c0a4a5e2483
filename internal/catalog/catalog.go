package catalog

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
)

// Catalog holds the most recently scanned page and answers search and filter
// queries against it.
type Catalog struct {
	mu   sync.RWMutex
	page Page
}

func New() *Catalog {
	return &Catalog{page: Page{
		Products:   []Product{},
		Gallery:    []Product{},
		Categories: []CategoryCard{},
		Issues:     []Issue{},
	}}
}

// Replace swaps the served page.
func (c *Catalog) Replace(page Page) {
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
}

// Page returns the served page.
func (c *Catalog) Page() Page {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// Search returns the product cards whose text contains q. A blank query
// returns every card.
func (c *Catalog) Search(q string) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []Product{}
	for _, p := range c.page.Products {
		if p.MatchesQuery(q) {
			out = append(out, p)
		}
	}
	return out
}

// Filter returns the product cards visible under the style filter.
func (c *Catalog) Filter(style string) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []Product{}
	for _, p := range c.page.Products {
		if p.MatchesStyle(style) {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the product or gallery item at position.
func (c *Catalog) Find(source string, position int) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := c.page.Products
	if source == SourceGallery {
		list = c.page.Gallery
	}
	if position < 0 || position >= len(list) {
		return Product{}, errors.New(errors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"source": source, "position": position})
	}
	return list[position], nil
}

// LoadFile scans the page at path into c. A blank path leaves c empty.
func (c *Catalog) LoadFile(ctx context.Context, s *Scanner, path string, logg *logger.Logger) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "opening storefront page")
	}
	defer f.Close()

	page, err := s.Scan(f)
	if err != nil {
		return err
	}
	c.Replace(page)

	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"path":     path,
			"products": len(page.Products),
			"gallery":  len(page.Gallery),
			"issues":   len(page.Issues),
		}), "catalog.loaded")
	}
	return nil
}
