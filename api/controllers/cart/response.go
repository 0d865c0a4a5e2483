package cart

import (
	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/internal/storefront"
	"github.com/angelmondragon/roxi-storefront/pkg/types"
)

type countResponse struct {
	Count int `json:"count"`
}

type addItemResponse struct {
	Item         cart.Item          `json:"item"`
	Count        int                `json:"count"`
	Notification types.Notification `json:"notification"`
}

func notificationFrom(toast *storefront.Toast) types.Notification {
	return types.Notification{Message: toast.Message(), DurationMS: toast.Duration().Milliseconds()}
}

func badgeCount(badge *cart.CountBadge) int {
	n, _ := badge.Count()
	return n
}
