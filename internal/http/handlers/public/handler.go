package public

import "github.com/2063ti/flugede-gadgets-store/internal/provider"

// Handler serves the storefront and customer APIs.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
