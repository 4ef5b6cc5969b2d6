package admin

import "github.com/2063ti/flugede-gadgets-store/internal/provider"

// Handler serves the staff management APIs.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
