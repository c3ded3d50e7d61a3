package domain

import (
	"regexp"
	"strings"
	"time"
)

// EventStatus enumerates the planning states of an event. Any status may
// follow any other.
type EventStatus string

const (
	EventStatusPlanning  EventStatus = "planejamento"
	EventStatusReady     EventStatus = "pronto"
	EventStatusCompleted EventStatus = "concluido"
	EventStatusCancelled EventStatus = "cancelado"
	EventStatusPostponed EventStatus = "adiado"
)

// EventStatuses lists the closed set in display order.
var EventStatuses = []EventStatus{
	EventStatusPlanning,
	EventStatusReady,
	EventStatusCompleted,
	EventStatusCancelled,
	EventStatusPostponed,
}

func (s EventStatus) Valid() bool {
	for _, known := range EventStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the display label for locale ("pt" or "en").
func (s EventStatus) Label(locale string) string {
	labels := eventStatusLabelsPT
	if locale == "en" {
		labels = eventStatusLabelsEN
	}
	return labels[s]
}

var eventStatusLabelsPT = map[EventStatus]string{
	EventStatusPlanning:  "Em planejamento",
	EventStatusReady:     "Pronto para realização",
	EventStatusCompleted: "Concluído",
	EventStatusCancelled: "Cancelado",
	EventStatusPostponed: "Adiado",
}

var eventStatusLabelsEN = map[EventStatus]string{
	EventStatusPlanning:  "Planning",
	EventStatusReady:     "Ready",
	EventStatusCompleted: "Completed",
	EventStatusCancelled: "Cancelled",
	EventStatusPostponed: "Postponed",
}

const MaxDescriptionLen = 150

// Event is a charity event. Position is its place in the global ordering.
type Event struct {
	ID          string
	Description string
	Date        time.Time
	Slug        string
	Status      EventStatus
	Position    int
}

func (e Event) Validate() error {
	if err := validateDescription(e.Description, true); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return Invalid("date", "date is required")
	}
	if err := ValidateSlug(e.Slug); err != nil {
		return err
	}
	if !e.Status.Valid() {
		return Invalid("status", "unknown event status")
	}
	return nil
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const MaxSlugLen = 50

// ValidateSlug accepts letters, digits, hyphens and underscores.
func ValidateSlug(slug string) error {
	if slug == "" {
		return Invalid("slug", "slug is required")
	}
	if len(slug) > MaxSlugLen || !slugPattern.MatchString(slug) {
		return Invalid("slug", "enter a valid slug consisting of letters, numbers, underscores or hyphens")
	}
	return nil
}

func validateDescription(desc string, required bool) error {
	if required && strings.TrimSpace(desc) == "" {
		return Invalid("description", "description is required")
	}
	if runeLen(desc) > MaxDescriptionLen {
		return Invalid("description", "description is too long")
	}
	return nil
}

// Photo is an image owned by one event. Position is scoped to that event.
type Photo struct {
	ID          string
	EventID     string
	Description string
	ImageFile   string
	Slug        string
	Position    int
}

func (p Photo) Validate() error {
	if p.EventID == "" {
		return Invalid("event_id", "event is required")
	}
	if err := validateDescription(p.Description, true); err != nil {
		return err
	}
	return ValidateSlug(p.Slug)
}
