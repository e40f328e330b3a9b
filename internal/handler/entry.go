package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/entry-exit-logbook/internal/i18n"
	"github.com/iliyamo/entry-exit-logbook/internal/model"
	"github.com/iliyamo/entry-exit-logbook/internal/service"
)

// EntryHandler exposes the entry log over HTTP.
type EntryHandler struct {
	Log *service.EntryLog // Log performs the load-modify-save cycles
	Msg i18n.Translator   // Msg localizes success and validation messages
}

// NewEntryHandler constructs an EntryHandler and panics if log is nil.
func NewEntryHandler(log *service.EntryLog, msg i18n.Translator) *EntryHandler {
	if log == nil {
		panic("nil entry log passed to NewEntryHandler")
	}
	return &EntryHandler{Log: log, Msg: msg}
}

// addEntryReq distinguishes absent fields from empty ones so defaults only
// apply to the former.
type addEntryReq struct {
	Type       typeField `json:"type"`
	PersonName *string   `json:"person_name"`
	PlaceFrom  *string   `json:"place_from"`
	PlaceTo    *string   `json:"place_to"`
}

// typeField accepts any JSON value.  Non-string values keep their raw text
// so they are rejected as an unknown type instead of an unreadable body.
type typeField string

func (f *typeField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = typeField(s)
		return nil
	}
	*f = typeField(b)
	return nil
}

func (r addEntryReq) input() service.AddInput {
	return service.AddInput{
		Type:       string(r.Type),
		PersonName: valueOr(r.PersonName, model.DefaultPersonName),
		PlaceFrom:  valueOr(r.PlaceFrom, ""),
		PlaceTo:    valueOr(r.PlaceTo, ""),
	}
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// AddEntry handles POST /api/entry.  It returns 200 with the created
// record, 400 for an unknown type or an unreadable body, and 500 with the
// raw error text when persisting fails.
func (h *EntryHandler) AddEntry(c echo.Context) error {
	var req addEntryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, h.Msg.T(i18n.InvalidBody))
	}

	e, err := h.Log.Add(c.Request().Context(), req.input())
	if err != nil {
		var typeErr *service.InvalidTypeError
		if errors.As(err, &typeErr) {
			return fail(c, http.StatusBadRequest, h.Msg.T(i18n.InvalidType))
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	key := i18n.EntryRecorded
	if e.Type == model.TypeExit {
		key = i18n.ExitRecorded
	}
	return ok(c, echo.Map{"message": h.Msg.T(key), "entry": e})
}

// ListEntries handles GET /api/entries.  The stored order is kept.
func (h *EntryHandler) ListEntries(c echo.Context) error {
	return ok(c, echo.Map{"entries": h.Log.List(c.Request().Context())})
}

// DeleteEntry handles DELETE /api/entries/:id.  Deleting an id that does
// not exist still succeeds.
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, h.Msg.T(i18n.InvalidID))
	}
	if _, err := h.Log.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return ok(c, echo.Map{"message": h.Msg.T(i18n.EntryDeleted)})
}

// Stats handles GET /api/stats.
func (h *EntryHandler) Stats(c echo.Context) error {
	return ok(c, echo.Map{"stats": h.Log.Stats(c.Request().Context())})
}

// Clear handles POST /api/clear.
func (h *EntryHandler) Clear(c echo.Context) error {
	if err := h.Log.Clear(c.Request().Context()); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}
	return ok(c, echo.Map{"message": h.Msg.T(i18n.AllCleared)})
}
