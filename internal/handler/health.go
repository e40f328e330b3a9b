package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/entry-exit-logbook/internal/repository"
)

// HealthHandler reports whether the service can read its store.
type HealthHandler struct {
	Store repository.Store
}

// Health is the health-check endpoint used by load balancers and
// monitoring.  It returns plain text "ok" with 200, or 503 when the store
// exists but cannot be read (the API would serve an empty log).
func (h *HealthHandler) Health(c echo.Context) error {
	res := h.Store.Load(c.Request().Context())
	if res.Status == repository.LoadCorrupt {
		return c.String(http.StatusServiceUnavailable, "store unreadable")
	}
	return c.String(http.StatusOK, "ok")
}
