package catalog

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/roxi-storefront/api/middleware"
	"github.com/angelmondragon/roxi-storefront/api/responses"
	"github.com/angelmondragon/roxi-storefront/api/validators"
	cartsvc "github.com/angelmondragon/roxi-storefront/internal/cart"
	catalogsvc "github.com/angelmondragon/roxi-storefront/internal/catalog"
	"github.com/angelmondragon/roxi-storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
	"github.com/angelmondragon/roxi-storefront/pkg/types"
)

const (
	maxPageBytes   = 2 << 20
	maxQueryLength = 200
)

type listResponse struct {
	Query    string               `json:"query,omitempty"`
	Filter   string               `json:"filter,omitempty"`
	Products []catalogsvc.Product `json:"products"`
	Total    int                  `json:"total"`
}

type lightboxAddResponse struct {
	Item         cartsvc.Item       `json:"item"`
	Count        int                `json:"count"`
	Title        string             `json:"title"`
	Meta         string             `json:"meta"`
	Notification types.Notification `json:"notification"`
}

// CatalogFetch returns the scanned page.
func CatalogFetch(cat *catalogsvc.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.Page())
	}
}

// CatalogScan scans the posted storefront HTML. The served catalog is only
// swapped for the result when replace is set.
func CatalogScan(cat *catalogsvc.Catalog, scanner *catalogsvc.Scanner, replace bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := validators.ReadBody(w, r, maxPageBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := scanner.Scan(bytes.NewReader(body))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if replace {
			cat.Replace(page)
		}

		if err := page.Err(); err != nil && logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{"issues": len(page.Issues)})
			logg.WarnErr(ctx, "catalog.scan.issues", err)
		}
		responses.WriteSuccess(w, page)
	}
}

// CatalogSearch lists the product cards matching ?q=.
func CatalogSearch(cat *catalogsvc.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := validators.ParseQueryString(r, "q", maxQueryLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products := cat.Search(q)
		responses.WriteSuccess(w, listResponse{Query: catalogsvc.NormalizeQuery(q), Products: products, Total: len(products)})
	}
}

// CatalogFilter lists the product cards visible under ?style=.
func CatalogFilter(cat *catalogsvc.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		style, err := validators.ParseQueryString(r, "style", maxQueryLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products := cat.Filter(style)
		responses.WriteSuccess(w, listResponse{Filter: catalogsvc.NormalizeFilter(style), Products: products, Total: len(products)})
	}
}

// CatalogLightboxAdd opens the lightbox on a product card or gallery image and
// adds it to the visitor's cart.
func CatalogLightboxAdd(cat *catalogsvc.Catalog, svc cartsvc.Service, formatter money.Formatter, notifyFor time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := chi.URLParam(r, "source")
		if source != catalogsvc.SourceProduct && source != catalogsvc.SourceGallery {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown product source").
				WithDetails(map[string]any{"source": source}))
			return
		}
		position, err := validators.ParseIndex(chi.URLParam(r, "position"), "position")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := cat.Find(source, position)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := product.Err(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		toast := storefront.NewToast(notifyFor)
		lightbox := storefront.NewLightbox(formatter, toast)
		lightbox.Open(storefront.ContextFor(product))

		badge := &cartsvc.CountBadge{}
		item, err := lightbox.AddToCart(r.Context(), svc.Cart(middleware.CartIDFromContext(r.Context()), badge))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, _ := badge.Count()

		responses.WriteSuccessStatus(w, http.StatusCreated, lightboxAddResponse{
			Item:         item,
			Count:        count,
			Title:        lightbox.Title(),
			Meta:         lightbox.Meta(),
			Notification: types.Notification{Message: toast.Message(), DurationMS: toast.Duration().Milliseconds()},
		})
	}
}
