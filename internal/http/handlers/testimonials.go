package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type testimonialDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	AuthorName string `json:"author_name,omitempty"`
	Text       string `json:"text"`
	Date       string `json:"date"`
}

func (a *App) TestimonialsList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := a.Testimonials.ListWithAuthors(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]testimonialDTO, 0, len(list))
	for _, t := range list {
		items = append(items, testimonialDTO{
			ID:         t.ID,
			UserID:     t.UserID,
			AuthorName: t.AuthorName(),
			Text:       t.Text,
			Date:       formatDate(t.Date),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type testimonialRequest struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

// TestimonialsSubmit stores a testimonial written by the caller.
func (a *App) TestimonialsSubmit(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req testimonialRequest
	if !a.decode(w, r, &req) {
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	t, err := a.Testimonials.Submit(r.Context(), userID, req.Text, date)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, testimonialDTO{ID: t.ID, UserID: t.UserID, Text: t.Text, Date: formatDate(t.Date)})
}

func (a *App) TestimonialsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Testimonials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

