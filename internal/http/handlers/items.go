package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wfm/internal/domain"
)

type itemDTO struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	ItemType    string `json:"item_type"`
}

func toItemDTO(i domain.Item) itemDTO {
	return itemDTO{ID: i.ID, Description: i.Description, ItemType: string(i.Type)}
}

func (a *App) ItemsList(w http.ResponseWriter, r *http.Request) {
	list, err := a.Items.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]itemDTO, 0, len(list))
	for _, i := range list {
		items = append(items, toItemDTO(i))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type itemRequest struct {
	Description string `json:"description"`
	ItemType    string `json:"item_type"`
}

func (a *App) ItemsCreate(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !a.decode(w, r, &req) {
		return
	}
	item := &domain.Item{Description: req.Description, Type: domain.ItemType(req.ItemType)}
	if err := a.Items.Create(r.Context(), item); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toItemDTO(*item))
}

type renameRequest struct {
	Description string `json:"description"`
}

func (a *App) ItemsRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !a.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := a.Items.Rename(r.Context(), id, req.Description); err != nil {
		a.fail(w, r, err)
		return
	}
	item, err := a.Items.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toItemDTO(*item))
}

func (a *App) ItemsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Items.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
