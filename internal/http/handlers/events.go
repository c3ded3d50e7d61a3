package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wfm/internal/domain"
	"wfm/internal/middleware"
	"wfm/internal/service"
)

type eventDTO struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Slug        string `json:"slug"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Position    int    `json:"position"`
}

func toEventDTO(e domain.Event, locale string) eventDTO {
	return eventDTO{
		ID:          e.ID,
		Description: e.Description,
		Date:        formatDate(e.Date),
		Slug:        e.Slug,
		Status:      string(e.Status),
		StatusLabel: e.Status.Label(locale),
		Position:    e.Position,
	}
}

func (a *App) EventsList(w http.ResponseWriter, r *http.Request) {
	events, err := a.Events.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, toEventDTO(e, locale))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// EventsGet looks the event up by slug.
func (a *App) EventsGet(w http.ResponseWriter, r *http.Request) {
	e, err := a.Events.GetBySlug(r.Context(), chi.URLParam(r, "event"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toEventDTO(*e, middleware.LocaleFromContext(r.Context())))
}

type eventRequest struct {
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Slug        *string `json:"slug"`
	Status      *string `json:"status"`
}

func (a *App) EventsCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !a.decode(w, r, &req) {
		return
	}
	date, err := parseDate("date", str(req.Date))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	e := &domain.Event{
		Description: str(req.Description),
		Date:        date,
		Slug:        str(req.Slug),
		Status:      domain.EventStatus(str(req.Status)),
	}
	if err := a.Events.Create(r.Context(), e); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toEventDTO(*e, middleware.LocaleFromContext(r.Context())))
}

// EventsPatch edits description, date or slug of the event with the given id.
func (a *App) EventsPatch(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Status != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "use the status endpoint to change status")
		return
	}
	patch := service.EventPatch{Description: req.Description, Slug: req.Slug}
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		patch.Date = &date
	}
	e, err := a.Events.Update(r.Context(), chi.URLParam(r, "event"), patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toEventDTO(*e, middleware.LocaleFromContext(r.Context())))
}

type moveRequest struct {
	Position *int `json:"position"`
}

func (a *App) EventsMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Position == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "position required")
		return
	}
	if err := a.Events.Reorder(r.Context(), chi.URLParam(r, "event"), *req.Position); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (a *App) EventsSetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.Events.SetStatus(r.Context(), chi.URLParam(r, "event"), domain.EventStatus(req.Status)); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) EventsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Events.Delete(r.Context(), chi.URLParam(r, "event")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
