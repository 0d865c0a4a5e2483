package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/roxi-storefront/pkg/logger"
)

var ErrInvalidCartCookie = errors.New("invalid cart cookie")

// CartCookie signs and verifies the cart session cookie. The value format is
// cartID.base64url(hmac-sha256(cartID)).
type CartCookie struct {
	secret []byte
	name   string
	secure bool
	maxAge time.Duration
}

func NewCartCookie(secret, name string, secure bool, maxAge time.Duration) *CartCookie {
	if strings.TrimSpace(name) == "" {
		name = "roxi_cart"
	}
	if maxAge <= 0 {
		maxAge = 30 * 24 * time.Hour
	}
	return &CartCookie{secret: []byte(secret), name: name, secure: secure, maxAge: maxAge}
}

func (c *CartCookie) Name() string { return c.name }

func (c *CartCookie) Encode(cartID string) string {
	return cartID + "." + c.sign(cartID)
}

func (c *CartCookie) Decode(v string) (string, error) {
	id, sig, ok := strings.Cut(v, ".")
	if !ok || id == "" || strings.Contains(sig, ".") {
		return "", ErrInvalidCartCookie
	}
	if !hmac.Equal([]byte(c.sign(id)), []byte(sig)) {
		return "", ErrInvalidCartCookie
	}
	return id, nil
}

func (c *CartCookie) set(w http.ResponseWriter, cartID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    c.Encode(cartID),
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CartCookie) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CartSession resolves the visitor's cart id from the signed cookie. A missing
// or tampered cookie starts a fresh cart instead of failing the request.
func CartSession(cookie *CartCookie, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cartID := ""
			if raw, err := r.Cookie(cookie.name); err == nil && raw.Value != "" {
				id, decodeErr := cookie.Decode(raw.Value)
				if decodeErr != nil {
					if logg != nil {
						logg.WarnErr(ctx, "cart.session.invalid_cookie", decodeErr)
					}
				} else {
					cartID = id
				}
			}
			if cartID == "" {
				cartID = uuid.NewString()
			}
			cookie.set(w, cartID)

			ctx = WithCartID(ctx, cartID)
			if logg != nil {
				ctx = logg.WithCartID(ctx, cartID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
