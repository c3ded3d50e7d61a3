package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wfm/internal/domain"
	"wfm/internal/infra"
	"wfm/internal/ordering"
	"wfm/internal/sqlinline"
)

// EventRepositoryPG implements domain.EventRepository. All events share one
// ordering scope.
type EventRepositoryPG struct {
	sql infra.TxRunner
}

func NewEventRepository(sql infra.TxRunner) *EventRepositoryPG {
	return &EventRepositoryPG{sql: sql}
}

// Create appends the event at the end of the global ordering.
func (r *EventRepositoryPG) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		entries, err := eventScope().lock(ctx, tx)
		if err != nil {
			return err
		}
		e.Position = ordering.Next(entries)
		_, err = tx.Exec(ctx, sqlinline.QInsertEvent, e.ID, e.Description, e.Date, e.Slug, string(e.Status), e.Position)
		return translateWrite(err, "")
	})
}

func (r *EventRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return scanEvent(r.sql.QueryRow(ctx, sqlinline.QSelectEventByID, id))
}

func (r *EventRepositoryPG) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return scanEvent(r.sql.QueryRow(ctx, sqlinline.QSelectEventBySlug, slug))
}

// List returns every event in display order.
func (r *EventRepositoryPG) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListEvents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Update edits description, date and slug. Position and status have their own operations.
func (r *EventRepositoryPG) Update(ctx context.Context, e *domain.Event) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateEvent, e.ID, e.Description, e.Date, e.Slug)
	if err != nil {
		return translateWrite(err, "")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepositoryPG) SetStatus(ctx context.Context, id string, status domain.EventStatus) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QSetEventStatus, id, string(status))
	if err != nil {
		return translateKey(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Move places the event at position to, shifting the events in between.
func (r *EventRepositoryPG) Move(ctx context.Context, id string, to int) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		return eventScope().move(ctx, tx, id, to)
	})
}

// Delete removes an unreferenced event and closes its gap in the ordering.
func (r *EventRepositoryPG) Delete(ctx context.Context, id string) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		s := eventScope()
		entries, err := s.lock(ctx, tx)
		if err != nil {
			return err
		}
		var photos, donations int64
		if err := tx.QueryRow(ctx, sqlinline.QCountEventReferences, id).Scan(&photos, &donations); err != nil {
			return translateKey(err)
		}
		if photos > 0 {
			return domain.Protected("photos", "event still has photos")
		}
		if donations > 0 {
			return domain.Protected("donations", "event still has donations")
		}
		changes, err := ordering.Remove(entries, id)
		if errors.Is(err, ordering.ErrNotInSequence) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlinline.QDeleteEvent, id); err != nil {
			return translateDelete(err)
		}
		return s.apply(ctx, tx, changes)
	})
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(&e.ID, &e.Description, &e.Date, &e.Slug, &e.Status, &e.Position); err != nil {
		return nil, translateRead(err)
	}
	return &e, nil
}

var _ domain.EventRepository = (*EventRepositoryPG)(nil)
