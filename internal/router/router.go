package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/entry-exit-logbook/internal/handler"
	"github.com/iliyamo/entry-exit-logbook/internal/web"
)

// APIMiddleware groups the route-level middleware of the JSON API.  Read
// applies to GET routes (response cache), Write to mutating routes (rate
// limit, cache invalidation).  The first element runs outermost.
type APIMiddleware struct {
	Read  []echo.MiddlewareFunc
	Write []echo.MiddlewareFunc
}

// RegisterRoutes registers the health check used by load balancers.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterAPI mounts the logbook operations under /api.
func RegisterAPI(e *echo.Echo, h *handler.EntryHandler, mw APIMiddleware) {
	g := e.Group("/api")
	g.POST("/entry", h.AddEntry, mw.Write...)
	g.GET("/entries", h.ListEntries, mw.Read...)
	g.DELETE("/entries/:id", h.DeleteEntry, mw.Write...)
	g.GET("/stats", h.Stats, mw.Read...)
	g.POST("/clear", h.Clear, mw.Write...)
}

// RegisterUI installs the template renderer and serves the page at / and
// its assets under /static.
func RegisterUI(e *echo.Echo, locale string, family []string) error {
	r, err := web.NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = r
	e.GET("/", handler.Index(locale, family))
	e.StaticFS("/static", web.StaticFS())
	return nil
}
