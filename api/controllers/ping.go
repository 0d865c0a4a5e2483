package controllers

import (
	"net/http"

	"github.com/angelmondragon/roxi-storefront/api/middleware"
	"github.com/angelmondragon/roxi-storefront/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

// SessionPing echoes the cart session resolved for the caller.
func SessionPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "session", "status": "ok"}
		if cartID := middleware.CartIDFromContext(r.Context()); cartID != "" {
			payload["cart_id"] = cartID
		}
		responses.WriteSuccess(w, payload)
	}
}
