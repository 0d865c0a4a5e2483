package catalog

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
	"golang.org/x/net/html"
)

// Markup hooks the storefront page exposes.
const (
	classProductCard  = "product-card"
	classProductName  = "product-name"
	classProductPrice = "product-price"
	classProductImage = "product-image"
	classGalleryItem  = "gallery-item"
	classCategoryCard = "category-card"
	idGallery         = "galeria"
	attrStyle         = "data-style"
	attrTarget        = "data-target"
)

// Scanner reads product cards out of storefront HTML.
type Scanner struct {
	prices money.Parser
	base   *url.URL
}

// NewScanner builds a scanner. When base is set, image sources are resolved
// against it the way a browser resolves img.src.
func NewScanner(prices money.Parser, base *url.URL) *Scanner {
	return &Scanner{prices: prices, base: base}
}

// Scan parses the document and returns every product card, gallery image and
// category tile in document order.
func (s *Scanner) Scan(r io.Reader) (Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Page{}, errors.Wrap(errors.CodeValidation, err, "parsing storefront html")
	}

	page := Page{
		Products:   []Product{},
		Gallery:    []Product{},
		Categories: []CategoryCard{},
		Issues:     []Issue{},
	}

	walk(doc, func(n *html.Node) bool {
		switch {
		case hasClass(n, classProductCard):
			p := s.productCard(n, len(page.Products))
			page.Products = append(page.Products, p)
			if p.err != nil {
				page.Issues = append(page.Issues, issueFor(p))
			}
			return false
		case hasClass(n, classCategoryCard):
			page.Categories = append(page.Categories, CategoryCard{
				Label:  textContent(n),
				Target: strings.ToLower(attr(n, attrTarget)),
			})
		case isElement(n) && attr(n, "id") == idGallery:
			page.Gallery = append(page.Gallery, s.gallery(n)...)
			return false
		}
		return true
	})

	return page, nil
}

func (s *Scanner) productCard(card *html.Node, position int) Product {
	p := Product{
		Position: position,
		Style:    strings.TrimSpace(attr(card, attrStyle)),
		Source:   SourceProduct,
		text:     strings.ToLower(rawText(card)),
	}
	if n := findClass(card, classProductName); n != nil {
		p.Name = textContent(n)
	}
	if n := findClass(card, classProductPrice); n != nil {
		p.PriceText = textContent(n)
	}
	if n := findClass(card, classProductImage); n != nil {
		p.Src = s.resolve(attr(n, "src"))
	}

	if p.Name == "" {
		p.err = errors.New(errors.CodeValidation, "product card has no name")
		return p
	}
	price, err := s.prices.Parse(p.PriceText)
	if err != nil {
		p.err = err
		return p
	}
	p.Price = price
	return p
}

func (s *Scanner) gallery(root *html.Node) []Product {
	items := []Product{}
	walk(root, func(n *html.Node) bool {
		if !hasClass(n, classGalleryItem) {
			return true
		}
		position := len(items)
		img := findTag(n, "img")
		if img == nil {
			return false
		}
		name := strings.TrimSpace(attr(img, "alt"))
		if name == "" {
			name = fmt.Sprintf("Inspiración %d", position+1)
		}
		items = append(items, Product{
			Position: position,
			Name:     name,
			Price:    GalleryPrice,
			Style:    GalleryStyle,
			Src:      s.resolve(attr(img, "src")),
			Source:   SourceGallery,
			text:     strings.ToLower(name),
		})
		return false
	})
	return items
}

func (s *Scanner) resolve(src string) string {
	if src == "" || s.base == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return s.base.ResolveReference(ref).String()
}

// walk visits n and its descendants depth first; fn returns false to skip the
// children of the node it was given.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func isElement(n *html.Node) bool {
	return n.Type == html.ElementNode
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if !isElement(n) {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findClass(root *html.Node, class string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && hasClass(n, class) {
			found = n
			return false
		}
		return true
	})
	return found
}

func findTag(root *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && isElement(n) && n.Data == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

// rawText concatenates every text node below n, like DOM textContent.
func rawText(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

func textContent(n *html.Node) string {
	return strings.TrimSpace(rawText(n))
}
