package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"wfm/internal/domain"
	"wfm/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const homeTestimonials = 3

var pageText = map[string]map[string]string{
	middleware.LocalePT: {
		"title":        "Doações e eventos",
		"events":       "Próximos eventos",
		"testimonials": "Depoimentos",
		"no_events":    "Nenhum evento cadastrado.",
		"no_quotes":    "Nenhum depoimento ainda.",
		"all_quotes":   "Ver todos os depoimentos",
		"home":         "Início",
	},
	middleware.LocaleEN: {
		"title":        "Donations and events",
		"events":       "Upcoming events",
		"testimonials": "Testimonials",
		"no_events":    "No events yet.",
		"no_quotes":    "No testimonials yet.",
		"all_quotes":   "See all testimonials",
		"home":         "Home",
	},
}

func parsePages() *template.Template {
	return template.Must(template.New("pages").ParseFS(templateFS, "templates/*.html"))
}

type pageEvent struct {
	Description string
	Date        string
	Slug        string
	StatusLabel string
}

type pageQuote struct {
	Author string
	Text   string
	Date   string
}

type pageData struct {
	Lang         string
	T            map[string]string
	Events       []pageEvent
	Testimonials []pageQuote
}

func (a *App) newPageData(r *http.Request) pageData {
	locale := middleware.LocaleFromContext(r.Context())
	text, ok := pageText[locale]
	if !ok {
		text = pageText[middleware.LocalePT]
	}
	return pageData{Lang: locale, T: text}
}

func toQuotes(list []domain.TestimonialWithAuthor) []pageQuote {
	out := make([]pageQuote, 0, len(list))
	for _, t := range list {
		out = append(out, pageQuote{Author: t.AuthorName(), Text: t.Text, Date: formatDate(t.Date)})
	}
	return out
}

// HomePage renders the event list and the latest testimonials.
func (a *App) HomePage(w http.ResponseWriter, r *http.Request) {
	data := a.newPageData(r)
	events, err := a.Events.List(r.Context())
	if err != nil {
		a.failPage(w, r, err)
		return
	}
	for _, e := range events {
		data.Events = append(data.Events, pageEvent{
			Description: e.Description,
			Date:        formatDate(e.Date),
			Slug:        e.Slug,
			StatusLabel: e.Status.Label(data.Lang),
		})
	}
	quotes, err := a.Testimonials.ListWithAuthors(r.Context(), homeTestimonials)
	if err != nil {
		a.failPage(w, r, err)
		return
	}
	data.Testimonials = toQuotes(quotes)
	a.render(w, r, "home", data)
}

// TestimonialsPage renders every testimonial, newest first.
func (a *App) TestimonialsPage(w http.ResponseWriter, r *http.Request) {
	data := a.newPageData(r)
	quotes, err := a.Testimonials.ListWithAuthors(r.Context(), 0)
	if err != nil {
		a.failPage(w, r, err)
		return
	}
	data.Testimonials = toQuotes(quotes)
	a.render(w, r, "testimonials", data)
}

func (a *App) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	var buf bytes.Buffer
	if err := a.pages.ExecuteTemplate(&buf, name, data); err != nil {
		a.failPage(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (a *App) failPage(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("render page failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
