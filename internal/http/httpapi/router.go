package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"wfm/internal/http/handlers"
	"wfm/internal/middleware"
)

// Options carries the pieces of the HTTP stack that are not handlers.
type Options struct {
	Logger        zerolog.Logger
	CORSOrigins   []string
	DefaultLocale string
	CountryLookup middleware.CountryLookup
	// SubmitLimiter throttles testimonial submissions per client. Nil disables it.
	SubmitLimiter *middleware.RateLimiter
	// Media serves stored uploads under /media/. Nil leaves the prefix unrouted.
	Media http.Handler
	// ActiveUser re-checks the token's user on signed-in routes. Nil trusts
	// the token until it expires.
	ActiveUser middleware.ActiveUserCheck
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	signedIn := []func(http.Handler) http.Handler{middleware.AuthJWT(app.JWTSecret)}
	staff := []func(http.Handler) http.Handler{middleware.AuthJWT(app.JWTSecret), middleware.RequireStaff}
	if opts.ActiveUser != nil {
		signedIn = append(signedIn, middleware.RequireActiveUser(opts.ActiveUser))
		staff = append(staff, middleware.RequireActiveUser(opts.ActiveUser))
	}

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	// Pages
	r.Get("/", app.HomePage)
	r.Get("/testimonials", app.TestimonialsPage)
	if opts.Media != nil {
		r.Handle("/media/*", http.StripPrefix("/media/", opts.Media))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		// Public reads; {event} is the slug here.
		r.Get("/events", app.EventsList)
		r.Get("/events/{event}", app.EventsGet)
		r.Get("/events/{event}/photos", app.PhotosList)
		r.Get("/events/{event}/photos.zip", app.PhotosArchive)
		r.Get("/items", app.ItemsList)
		r.Get("/testimonials", app.TestimonialsList)

		r.Post("/auth/token", app.AuthToken)

		// Any signed-in user.
		r.Group(func(r chi.Router) {
			r.Use(signedIn...)
			r.Get("/me", app.Me)
			r.Group(func(r chi.Router) {
				if opts.SubmitLimiter != nil {
					r.Use(opts.SubmitLimiter.Middleware)
				}
				r.Post("/testimonials", app.TestimonialsSubmit)
			})
		})

		// Staff only; {event} is the id here.
		r.Group(func(r chi.Router) {
			r.Use(staff...)

			r.Post("/events", app.EventsCreate)
			r.Patch("/events/{event}", app.EventsPatch)
			r.Delete("/events/{event}", app.EventsDelete)
			r.Post("/events/{event}/move", app.EventsMove)
			r.Put("/events/{event}/status", app.EventsSetStatus)
			r.Post("/events/{event}/photos", app.PhotosUpload)
			r.Get("/events/{event}/donations", app.DonationsByEvent)
			r.Get("/events/{event}/totals", app.DonationsTotals)

			r.Post("/photos/{id}/move", app.PhotosMove)
			r.Delete("/photos/{id}", app.PhotosDelete)

			r.Post("/items", app.ItemsCreate)
			r.Patch("/items/{id}", app.ItemsRename)
			r.Delete("/items/{id}", app.ItemsDelete)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", app.UsersCreate)
				r.Get("/{id}", app.UsersGet)
				r.Patch("/{id}", app.UsersPatch)
				r.Delete("/{id}", app.UsersDelete)
				r.Post("/{id}/deactivate", app.UsersDeactivate)
				r.Post("/{id}/email", app.UsersEmail)
			})

			r.Route("/donations", func(r chi.Router) {
				r.Post("/", app.DonationsRecord)
				r.Get("/{id}", app.DonationsGet)
				r.Delete("/{id}", app.DonationsDelete)
				r.Get("/{id}/items", app.DonationsListItems)
				r.Post("/{id}/items", app.DonationsAddItem)
				r.Put("/{id}/items/{item}", app.DonationsUpdateQuantity)
				r.Delete("/{id}/items/{item}", app.DonationsRemoveItem)
			})

			r.Delete("/testimonials/{id}", app.TestimonialsDelete)
		})
	})

	return r
}
