package service

import (
	"context"
	"time"

	"wfm/internal/domain"
)

// EventPatch lists the event fields an update may change. Nil fields are kept.
type EventPatch struct {
	Description *string
	Date        *time.Time
	Slug        *string
}

type EventService struct {
	events domain.EventRepository
}

func NewEventService(events domain.EventRepository) *EventService {
	return &EventService{events: events}
}

// Create validates the event and appends it to the ordering. An empty status
// defaults to planejamento.
func (s *EventService) Create(ctx context.Context, e *domain.Event) error {
	if e.Status == "" {
		e.Status = domain.EventStatusPlanning
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return s.events.Create(ctx, e)
}

func (s *EventService) Update(ctx context.Context, id string, patch EventPatch) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Slug != nil {
		e.Slug = *patch.Slug
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Reorder moves the event to position, clamped to the current range.
func (s *EventService) Reorder(ctx context.Context, id string, position int) error {
	return s.events.Move(ctx, id, position)
}

func (s *EventService) SetStatus(ctx context.Context, id string, status domain.EventStatus) error {
	if !status.Valid() {
		return domain.Invalid("status", "unknown event status")
	}
	return s.events.SetStatus(ctx, id, status)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *EventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return s.events.GetBySlug(ctx, slug)
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}
