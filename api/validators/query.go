package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/roxi-storefront/pkg/errors"
)

// ParseQueryString returns the raw query value, rejecting values longer than
// maxLen bytes. Whitespace is preserved; callers normalize.
func ParseQueryString(r *http.Request, key string, maxLen int) (string, error) {
	value := r.URL.Query().Get(key)
	if maxLen > 0 && len(value) > maxLen {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter too long").WithDetails(map[string]any{"field": key, "max": maxLen})
	}
	return value, nil
}

// ParseIndex parses a non-negative integer path or query value.
func ParseIndex(raw, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "parameter must be numeric").WithDetails(map[string]any{"field": field})
	}
	if value < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "parameter out of range").WithDetails(map[string]any{"field": field, "min": 0})
	}
	return value, nil
}
