package instance

import (
	"os"

	"github.com/angelmondragon/roxi-storefront/pkg/env"
)

// GetID identifies this process in logs: ROXI_INSTANCE_ID, then the platform
// dyno name, then the hostname.
func GetID() string {
	if id := env.Get("ROXI_INSTANCE_ID", ""); id != "" {
		return id
	}
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
