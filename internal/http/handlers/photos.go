package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wfm/internal/domain"
)

const maxUploadBytes = 10 << 20

type photoDTO struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	ImageURL    string `json:"image_url,omitempty"`
	Position    int    `json:"position"`
}

func (a *App) toPhotoDTO(p domain.Photo) photoDTO {
	dto := photoDTO{ID: p.ID, EventID: p.EventID, Description: p.Description, Slug: p.Slug, Position: p.Position}
	if a.Files != nil {
		dto.ImageURL = a.Files.URL(p.ImageFile)
	}
	return dto
}

// PhotosList returns the gallery of the event with the given slug.
func (a *App) PhotosList(w http.ResponseWriter, r *http.Request) {
	e, err := a.Events.GetBySlug(r.Context(), chi.URLParam(r, "event"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	photos, err := a.Photos.ListByEvent(r.Context(), e.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]photoDTO, 0, len(photos))
	for _, p := range photos {
		items = append(items, a.toPhotoDTO(p))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// PhotosArchive downloads the event's gallery as a zip.
func (a *App) PhotosArchive(w http.ResponseWriter, r *http.Request) {
	e, err := a.Events.GetBySlug(r.Context(), chi.URLParam(r, "event"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := a.Photos.Archive(r.Context(), e.ID, &buf); err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.zip", e.Slug))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// PhotosUpload accepts multipart form fields description, slug and image for
// the event with the given id.
func (a *App) PhotosUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.fail(w, r, domain.Invalid("image", "image file required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read image")
		return
	}
	p := &domain.Photo{
		EventID:     chi.URLParam(r, "event"),
		Description: r.FormValue("description"),
		Slug:        r.FormValue("slug"),
	}
	if err := a.Photos.Upload(r.Context(), p, header.Filename, data); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, a.toPhotoDTO(*p))
}

func (a *App) PhotosMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Position == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "position required")
		return
	}
	if err := a.Photos.Reorder(r.Context(), chi.URLParam(r, "id"), *req.Position); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) PhotosDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Photos.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
