package cart

import (
	"net/http"
	"time"

	"github.com/angelmondragon/roxi-storefront/api/middleware"
	"github.com/angelmondragon/roxi-storefront/api/responses"
	"github.com/angelmondragon/roxi-storefront/api/validators"
	cartsvc "github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
)

// CartFetch returns the visitor's cart with its totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		ctrl := svc.Cart(middleware.CartIDFromContext(r.Context()), nil)
		responses.WriteSuccess(w, ctrl.Summary(r.Context()))
	}
}

// CartAddItem adds a product card to the cart, merging it with an existing
// line of the same name and price.
func CartAddItem(svc cartsvc.Service, notifyFor time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		badge := &cartsvc.CountBadge{}
		ctrl := svc.Cart(middleware.CartIDFromContext(r.Context()), badge)

		item, err := ctrl.AddToCart(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		toast := storefront.NewToast(notifyFor)
		toast.Notify(r.Context(), storefront.ProductAddedMessage, 0)

		responses.WriteSuccessStatus(w, http.StatusCreated, addItemResponse{
			Item:         item,
			Count:        badgeCount(badge),
			Notification: notificationFrom(toast),
		})
	}
}

// CartCount returns the badge count.
func CartCount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		ctrl := svc.Cart(middleware.CartIDFromContext(r.Context()), nil)
		responses.WriteSuccess(w, countResponse{Count: ctrl.UpdateCartCount(r.Context())})
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		ctrl := svc.Cart(middleware.CartIDFromContext(r.Context()), nil)
		if err := ctrl.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, countResponse{Count: 0})
	}
}
