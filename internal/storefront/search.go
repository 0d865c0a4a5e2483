package storefront

import (
	"strings"
	"sync"

	"github.com/angelmondragon/roxi-storefront/internal/catalog"
)

// Keys the overlay reacts to.
const (
	KeyEscape = "Escape"
	KeySearch = "k"
)

// SearchOverlay is the full screen search box.
type SearchOverlay struct {
	mu       sync.Mutex
	visible  bool
	products []catalog.Product
}

func NewSearchOverlay(products []catalog.Product) *SearchOverlay {
	return &SearchOverlay{products: products}
}

func (s *SearchOverlay) Show() { s.setVisible(true) }

func (s *SearchOverlay) Hide() { s.setVisible(false) }

func (s *SearchOverlay) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *SearchOverlay) setVisible(v bool) {
	s.mu.Lock()
	s.visible = v
	s.mu.Unlock()
}

// HandleKey applies the keyboard shortcuts: Escape hides the overlay and
// Ctrl+K or Cmd+K shows it. It reports whether the key was consumed.
func (s *SearchOverlay) HandleKey(key string, ctrl, meta bool) bool {
	switch {
	case key == KeyEscape:
		s.Hide()
		return true
	case (ctrl || meta) && strings.ToLower(key) == KeySearch:
		s.Show()
		return true
	}
	return false
}

// Query returns the visibility of each card for q.
func (s *SearchOverlay) Query(q string) []bool {
	visible := make([]bool, len(s.products))
	for i, p := range s.products {
		visible[i] = p.MatchesQuery(q)
	}
	return visible
}
