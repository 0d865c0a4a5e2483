package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/roxi-storefront/api/middleware"
	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/internal/cart/stores"
	"github.com/angelmondragon/roxi-storefront/internal/catalog"
	"github.com/angelmondragon/roxi-storefront/pkg/config"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
)

const storefrontHTML = `<section id="productos">
<div class="product-card" data-style="elegante"><h3 class="product-name">Vestido Rojo</h3><p class="product-price">Bs 250</p></div>
<div class="product-card" data-style="casual"><h3 class="product-name">Blusa de Lino</h3><p class="product-price">Bs 1.234,50</p></div>
<div class="product-card" data-style="casual"><h3 class="product-name">Falda</h3><p class="product-price">Consultar</p></div>
</section>
<section id="galeria"><div class="gallery-item"><img src="g1.jpg"></div></section>`

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: config.AppEnvDev},
		Cart: config.CartConfig{Backend: config.CartBackendMemory, StorageKey: "roxi_cart_v1", CookieName: "roxi_cart", CookieSecret: "test-secret"},
		UI:   config.UIConfig{NotificationDuration: 2500 * time.Millisecond},
	}
}

func newTestRouter(t *testing.T, opts ...func(*config.Config)) http.Handler {
	t.Helper()
	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	reg := prometheus.NewRegistry()
	m := metrics.NewCartMetrics(reg)
	factory, err := stores.New(cfg.Cart, stores.Deps{Metrics: m, Logger: logg})
	if err != nil {
		t.Fatalf("stores: %v", err)
	}
	svc, err := cart.NewService(cart.ServiceParams{Stores: factory, StorageKey: cfg.Cart.StorageKey, Metrics: m, Logger: logg})
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	scanner := catalog.NewScanner(money.DefaultParser(), nil)
	page, err := scanner.Scan(strings.NewReader(storefrontHTML))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	cat := catalog.New()
	cat.Replace(page)

	return NewRouter(Deps{
		Config:     cfg,
		Logger:     logg,
		Cart:       svc,
		Catalog:    cat,
		Scanner:    scanner,
		Formatter:  money.DefaultFormatter(),
		Gatherer:   reg,
		CartCookie: middleware.NewCartCookie(cfg.Cart.CookieSecret, cfg.Cart.CookieName, false, 0),
	})
}

type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "roxi_cart" {
			c.cookie = ck
		}
	}

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			c.t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return rec, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return out
}

type addResponse struct {
	Item         cart.Item `json:"item"`
	Count        int       `json:"count"`
	Title        string    `json:"title"`
	Meta         string    `json:"meta"`
	Notification struct {
		Message    string `json:"message"`
		DurationMS int64  `json:"duration_ms"`
	} `json:"notification"`
}

func TestAddToCartMergesAndCounts(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	rec, env := c.do(http.MethodPost, "/api/v1/cart/items", `{"name":"Vestido Rojo","price":250,"style":"elegante"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	first := decode[addResponse](t, env.Data)
	if first.Count != 1 || first.Item.Qty != 1 {
		t.Fatalf("unexpected first add %+v", first)
	}
	if first.Notification.Message != "Producto añadido al carrito 🛒" || first.Notification.DurationMS != 2500 {
		t.Fatalf("unexpected notification %+v", first.Notification)
	}

	_, env = c.do(http.MethodPost, "/api/v1/cart/items", `{"name":"Vestido Rojo","price":250,"style":"elegante"}`)
	second := decode[addResponse](t, env.Data)
	if second.Count != 2 || second.Item.Qty != 2 || second.Item.ID != first.Item.ID {
		t.Fatalf("expected merge into %s, got %+v", first.Item.ID, second)
	}

	_, env = c.do(http.MethodGet, "/api/v1/cart/count", "")
	if got := decode[map[string]int](t, env.Data)["count"]; got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}

	_, env = c.do(http.MethodGet, "/api/v1/cart", "")
	summary := decode[cart.Summary](t, env.Data)
	if len(summary.Items) != 1 || summary.FormattedTotal != "Bs 500" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestCartsAreScopedByCookie(t *testing.T) {
	router := newTestRouter(t)
	alice := &client{t: t, router: router}
	bob := &client{t: t, router: router}

	alice.do(http.MethodPost, "/api/v1/cart/items", `{"name":"A","price":10}`)
	alice.do(http.MethodPost, "/api/v1/cart/items", `{"name":"A","price":10.5}`)

	_, env := alice.do(http.MethodGet, "/api/v1/cart/count", "")
	if got := decode[map[string]int](t, env.Data)["count"]; got != 2 {
		t.Fatalf("expected 2 for alice, got %d", got)
	}
	_, env = bob.do(http.MethodGet, "/api/v1/cart/count", "")
	if got := decode[map[string]int](t, env.Data)["count"]; got != 0 {
		t.Fatalf("expected empty cart for bob, got %d", got)
	}

	rec, _ := alice.do(http.MethodDelete, "/api/v1/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on clear, got %d", rec.Code)
	}
	_, env = alice.do(http.MethodGet, "/api/v1/cart/count", "")
	if got := decode[map[string]int](t, env.Data)["count"]; got != 0 {
		t.Fatalf("expected 0 after clear, got %d", got)
	}
}

func TestAddToCartRejectsBadBody(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	for _, body := range []string{`{"price":10}`, `{"name":"A"}`, `{"name":"A","price":-3}`, `not json`} {
		rec, env := c.do(http.MethodPost, "/api/v1/cart/items", body)
		if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error for %s, got %d %s", body, rec.Code, rec.Body.String())
		}
	}
}

func TestCatalogSearchAndFilter(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	_, env := c.do(http.MethodGet, "/api/v1/catalog/search?q=+VESTIDO+", "")
	found := decode[struct {
		Query string `json:"query"`
		Total int    `json:"total"`
	}](t, env.Data)
	if found.Total != 1 || found.Query != "vestido" {
		t.Fatalf("unexpected search result %+v", found)
	}

	_, env = c.do(http.MethodGet, "/api/v1/catalog/filter?style=Casual", "")
	filtered := decode[struct {
		Filter string `json:"filter"`
		Total  int    `json:"total"`
	}](t, env.Data)
	if filtered.Total != 2 || filtered.Filter != "casual" {
		t.Fatalf("unexpected filter result %+v", filtered)
	}

	_, env = c.do(http.MethodGet, "/api/v1/catalog/filter", "")
	if got := decode[struct {
		Total int `json:"total"`
	}](t, env.Data); got.Total != 3 {
		t.Fatalf("expected all cards, got %d", got.Total)
	}
}

const bolsoCard = `<div class="product-card"><span class="product-name">Bolso</span><span class="product-price">Bs 89,90</span></div>`

func allowScanReplace(cfg *config.Config) { cfg.Catalog.ScanReplace = true }

func searchTotal(t *testing.T, c *client, q string) int {
	t.Helper()
	_, env := c.do(http.MethodGet, "/api/v1/catalog/search?q="+q, "")
	return decode[struct {
		Total int `json:"total"`
	}](t, env.Data).Total
}

func TestCatalogScanIsReadOnlyByDefault(t *testing.T) {
	router := newTestRouter(t)
	scanner := &client{t: t, router: router}
	visitor := &client{t: t, router: router}

	rec, env := scanner.do(http.MethodPost, "/api/v1/catalog/scan", bolsoCard)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	page := decode[catalog.Page](t, env.Data)
	if len(page.Products) != 1 || page.Products[0].Price != 89.9 {
		t.Fatalf("unexpected page %+v", page)
	}

	if got := searchTotal(t, visitor, ""); got != 3 {
		t.Fatalf("expected the served catalog untouched, got %d cards", got)
	}
	if got := searchTotal(t, visitor, "bolso"); got != 0 {
		t.Fatalf("scanned card leaked into the served catalog")
	}
}

func TestCatalogScanReplacesPageWhenEnabled(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, allowScanReplace)}

	rec, _ := c.do(http.MethodPost, "/api/v1/catalog/scan", bolsoCard)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := searchTotal(t, c, "vestido"); got != 0 {
		t.Fatalf("expected the old page to be replaced, got %d", got)
	}
	if got := searchTotal(t, c, "bolso"); got != 1 {
		t.Fatalf("expected the scanned card to be served, got %d", got)
	}
}

func TestCatalogScanRejectsOversizedPage(t *testing.T) {
	router := newTestRouter(t, allowScanReplace)
	scanner := &client{t: t, router: router}
	visitor := &client{t: t, router: router}

	body := strings.Repeat(" ", 2<<20) + bolsoCard
	rec, env := scanner.do(http.MethodPost, "/api/v1/catalog/scan", body)
	if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error for oversized page, got %d %s", rec.Code, rec.Body.String())
	}

	if got := searchTotal(t, visitor, ""); got != 3 {
		t.Fatalf("expected the served catalog untouched, got %d cards", got)
	}
}

func TestLightboxAddFromGallery(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	rec, env := c.do(http.MethodPost, "/api/v1/catalog/gallery/0/cart", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	added := decode[addResponse](t, env.Data)
	if added.Item.Name != "Inspiración 1" || added.Item.Price != 199 || added.Count != 1 {
		t.Fatalf("unexpected item %+v", added)
	}
	if added.Meta != "Bs 199  •  Inspiración" {
		t.Fatalf("unexpected meta %q", added.Meta)
	}
	if added.Notification.Message != "Inspiración 1 añadido al carrito 🛒" {
		t.Fatalf("unexpected notification %q", added.Notification.Message)
	}
}

func TestLightboxAddErrors(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	cases := map[string]int{
		"/api/v1/catalog/product/2/cart": http.StatusBadRequest,
		"/api/v1/catalog/product/9/cart": http.StatusNotFound,
		"/api/v1/catalog/shelf/0/cart":   http.StatusBadRequest,
		"/api/v1/catalog/product/x/cart": http.StatusBadRequest,
	}
	for path, want := range cases {
		rec, _ := c.do(http.MethodPost, path, "")
		if rec.Code != want {
			t.Fatalf("%s: expected %d got %d", path, want, rec.Code)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	rec, env := c.do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := decode[map[string]any](t, env.Data)["cart_backend"]; got != "memory" {
		t.Fatalf("unexpected backend %v", got)
	}

	c.do(http.MethodPost, "/api/v1/cart/items", `{"name":"A","price":1}`)
	rec, _ = c.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `cart_items_added_total{result="created"} 1`) {
		t.Fatalf("unexpected metrics output %s", rec.Body.String())
	}
}
