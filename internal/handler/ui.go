package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Index renders the single-page UI.  The page talks to the JSON API from
// the browser; family names become quick-select buttons for the name field.
func Index(locale string, family []string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "index.html", echo.Map{"Locale": locale, "Family": family})
	}
}
