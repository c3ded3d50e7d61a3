package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"wfm/internal/domain"
	"wfm/internal/middleware"
	"wfm/internal/service"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// URLer turns storage keys into public URLs.
type URLer interface {
	URL(key string) string
}

type App struct {
	Logger    zerolog.Logger
	JWTSecret string
	JWTTTL    time.Duration

	Users        *service.UserService
	Events       *service.EventService
	Photos       *service.PhotoService
	Items        *service.ItemService
	Donations    *service.DonationService
	Testimonials *service.TestimonialService

	Files  URLer
	Pinger Pinger

	pages *template.Template
}

func NewApp(logger zerolog.Logger, jwtSecret string, jwtTTL time.Duration) *App {
	return &App{
		Logger:    logger,
		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,
		pages:     parsePages(),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, errorBody{Error: errCode, Message: msg})
}

// fail maps a domain error onto its HTTP status. Unknown errors are logged
// and reported as a generic 500.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	body := errorBody{Message: err.Error(), Field: domain.FieldOf(err)}
	var code int
	switch {
	case errors.Is(err, domain.ErrValidation):
		code, body.Error = http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrConfiguration):
		code, body.Error = http.StatusBadRequest, "configuration_error"
	case errors.Is(err, domain.ErrNotFound):
		code, body.Error = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDuplicateItem):
		code, body.Error = http.StatusConflict, "duplicate_item"
	case errors.Is(err, domain.ErrUniqueness):
		code, body.Error = http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrReferentialIntegrity):
		code, body.Error = http.StatusConflict, "protected"
	case errors.Is(err, domain.ErrUnauthorized):
		code, body.Error = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrDelivery):
		a.Logger.Warn().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("delivery failed")
		code, body = http.StatusBadGateway, errorBody{Error: "delivery_failed", Message: "message could not be delivered"}
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		code, body = http.StatusInternalServerError, errorBody{Error: "internal", Message: "internal error"}
	}
	a.json(w, code, body)
}

// decode reads a JSON body, rejecting unknown fields.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

const dateLayout = "2006-01-02"

// parseDate accepts an ISO calendar date. Empty input yields the zero time.
func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "date must be YYYY-MM-DD")
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
