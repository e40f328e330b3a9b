// Package handler defines the HTTP handlers of the logbook API.  Every JSON
// response carries a boolean "success" plus either the payload or a
// human-readable "message".
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ok writes a 200 envelope with success=true merged with fields.
func ok(c echo.Context, fields echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// fail writes a failure envelope with the given status and message.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}
