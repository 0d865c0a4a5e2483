package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	AddResultCreated = "created"
	AddResultMerged  = "merged"

	FallbackDecode  = "decode"
	FallbackBackend = "backend"
)

// CartMetrics records cart store and controller activity.
type CartMetrics struct {
	itemsAdded    *prometheus.CounterVec
	loadFallbacks *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	itemsAdded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Add-to-cart operations by outcome.",
	}, []string{"result"})
	loadFallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_load_fallbacks_total",
		Help: "Cart loads that fell back to an empty cart.",
	}, []string{"reason"})
	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_store_duration_seconds",
		Help:    "Duration of cart store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op"})
	reg.MustRegister(itemsAdded, loadFallbacks, storeDuration)
	return &CartMetrics{
		itemsAdded:    itemsAdded,
		loadFallbacks: loadFallbacks,
		storeDuration: storeDuration,
	}
}

// IncItemsAdded counts an add-to-cart that created or merged a line item.
func (c *CartMetrics) IncItemsAdded(result string) {
	if c == nil || c.itemsAdded == nil {
		return
	}
	c.itemsAdded.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncLoadFallback counts a load that returned an empty cart because of an error.
func (c *CartMetrics) IncLoadFallback(reason string) {
	if c == nil || c.loadFallbacks == nil {
		return
	}
	c.loadFallbacks.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveStore records how long a store operation took.
func (c *CartMetrics) ObserveStore(backend, op string, duration time.Duration) {
	if c == nil || c.storeDuration == nil {
		return
	}
	c.storeDuration.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
