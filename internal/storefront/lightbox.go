package storefront

import (
	"context"
	"math"
	"sync"

	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/internal/catalog"
	"github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
)

const (
	defaultLightboxTitle = "Vista"
	defaultLightboxMeta  = "Inspiración"
	metaSeparator        = "  •  "
)

// CartAdder is the part of the cart controller the lightbox needs.
type CartAdder interface {
	AddToCart(ctx context.Context, in cart.ProductInput) (cart.Item, error)
}

// LightboxContext is the product shown in the lightbox.
type LightboxContext struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Style  string  `json:"style"`
	Src    string  `json:"src"`
	Source string  `json:"source"`
}

// ContextFor builds the lightbox context of a scanned product.
func ContextFor(p catalog.Product) LightboxContext {
	return LightboxContext{Name: p.Name, Price: p.Price, Style: p.Style, Src: p.Src, Source: p.Source}
}

// Lightbox is the enlarged image view with its own add-to-cart button.
type Lightbox struct {
	mu        sync.Mutex
	formatter money.Formatter
	notifier  Notifier
	shown     bool
	current   LightboxContext
	title     string
	meta      string
}

func NewLightbox(formatter money.Formatter, notifier Notifier) *Lightbox {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Lightbox{formatter: formatter, notifier: notifier}
}

// Open shows lc. A missing name is titled "Vista" and an unusable price reads
// as zero.
func (l *Lightbox) Open(lc LightboxContext) {
	if lc.Name == "" {
		lc.Name = defaultLightboxTitle
	}
	if math.IsNaN(lc.Price) || math.IsInf(lc.Price, 0) {
		lc.Price = 0
	}

	meta := lc.Style
	switch {
	case lc.Price != 0:
		meta = l.formatter.Format(lc.Price)
		if lc.Style != "" {
			meta += metaSeparator + lc.Style
		}
	case meta == "":
		meta = defaultLightboxMeta
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.shown = true
	l.current = lc
	l.title = lc.Name
	l.meta = meta
}

// Close hides the lightbox and clears what it displayed.
func (l *Lightbox) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shown = false
	l.current = LightboxContext{}
	l.title = ""
	l.meta = ""
}

// HandleKey closes the lightbox on Escape.
func (l *Lightbox) HandleKey(key string) bool {
	if key != KeyEscape {
		return false
	}
	l.Close()
	return true
}

func (l *Lightbox) Shown() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shown
}

func (l *Lightbox) Title() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.title
}

func (l *Lightbox) Meta() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.meta
}

func (l *Lightbox) Context() LightboxContext {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// AddToCart adds the displayed product and notifies "<name> añadido al carrito".
func (l *Lightbox) AddToCart(ctx context.Context, adder CartAdder) (cart.Item, error) {
	l.mu.Lock()
	shown, lc := l.shown, l.current
	l.mu.Unlock()
	if !shown {
		return cart.Item{}, errors.New(errors.CodeConflict, "lightbox is closed")
	}

	item, err := adder.AddToCart(ctx, cart.ProductInput{Name: lc.Name, Price: lc.Price, Style: lc.Style, Src: lc.Src})
	if err != nil {
		return cart.Item{}, err
	}
	l.notifier.Notify(ctx, AddedMessage(lc.Name), 0)
	return item, nil
}

// Notification texts.
const ProductAddedMessage = "Producto añadido al carrito 🛒"

func AddedMessage(name string) string {
	return name + " añadido al carrito 🛒"
}
