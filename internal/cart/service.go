package cart

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
)

// Service resolves the Controller for a visitor's cart.
type Service interface {
	Cart(cartID string, badge Badge) *Controller
	StorageKey(cartID string) string
}

type service struct {
	stores     StoreFactory
	storageKey string
	formatter  money.Formatter
	metrics    *metrics.CartMetrics
	logg       *logger.Logger
	newID      IDGenerator
}

// ServiceParams wires the cart service.
type ServiceParams struct {
	Stores     StoreFactory
	StorageKey string
	Formatter  money.Formatter
	Metrics    *metrics.CartMetrics
	Logger     *logger.Logger
	NewID      IDGenerator
}

func NewService(p ServiceParams) (Service, error) {
	if p.Stores == nil {
		return nil, fmt.Errorf("cart store factory required")
	}
	if strings.TrimSpace(p.StorageKey) == "" {
		return nil, fmt.Errorf("cart storage key required")
	}
	if p.Formatter.Symbol() == "" {
		p.Formatter = money.DefaultFormatter()
	}
	return &service{
		stores:     p.Stores,
		storageKey: strings.TrimSpace(p.StorageKey),
		formatter:  p.Formatter,
		metrics:    p.Metrics,
		logg:       p.Logger,
		newID:      p.NewID,
	}, nil
}

// StorageKey scopes the fixed storage key to one cart id. An empty id maps to
// the bare storage key.
func (s *service) StorageKey(cartID string) string {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return s.storageKey
	}
	return s.storageKey + ":" + cartID
}

func (s *service) Cart(cartID string, badge Badge) *Controller {
	f := s.formatter
	return NewController(s.stores.ForKey(s.StorageKey(cartID)), ControllerOptions{
		Badge:     badge,
		NewID:     s.newID,
		Formatter: &f,
		Metrics:   s.metrics,
		Logger:    s.logg,
	})
}
