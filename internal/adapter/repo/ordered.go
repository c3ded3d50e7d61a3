package repo

import (
	"context"
	"errors"
	"fmt"

	"wfm/internal/domain"
	"wfm/internal/infra"
	"wfm/internal/ordering"
	"wfm/internal/sqlinline"
)

// scope describes one ordered sequence: the advisory lock key, the query that
// lists (id, position) rows with FOR UPDATE and the statement writing one
// position.
type scope struct {
	key       string
	positions string
	update    string
	args      []any
}

func eventScope() scope {
	return scope{
		key:       "events",
		positions: sqlinline.QListEventPositions,
		update:    sqlinline.QUpdateEventPosition,
	}
}

func photoScope(eventID string) scope {
	return scope{
		key:       "photos:" + eventID,
		positions: sqlinline.QListPhotoPositions,
		update:    sqlinline.QUpdatePhotoPosition,
		args:      []any{eventID},
	}
}

// lock takes the scope's advisory lock and returns its current members with
// positions 0..n-1, rewriting any gaps or duplicates it finds first. Must run
// inside a transaction.
func (s scope) lock(ctx context.Context, tx infra.SQLExecutor) ([]ordering.Entry, error) {
	if _, err := tx.Exec(ctx, sqlinline.QLockScope, s.key); err != nil {
		return nil, fmt.Errorf("lock scope %s: %w", s.key, err)
	}
	rows, err := tx.Query(ctx, s.positions, s.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ordering.Entry
	for rows.Next() {
		var e ordering.Entry
		if err := rows.Scan(&e.ID, &e.Position); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	repairs := ordering.Compact(entries)
	if len(repairs) == 0 {
		return entries, nil
	}
	if err := s.apply(ctx, tx, repairs); err != nil {
		return nil, err
	}
	return ordering.Apply(entries, repairs), nil
}

func (s scope) apply(ctx context.Context, tx infra.SQLExecutor, changes []ordering.Change) error {
	for _, c := range changes {
		if _, err := tx.Exec(ctx, s.update, c.ID, c.Position); err != nil {
			return fmt.Errorf("write position of %s: %w", c.ID, err)
		}
	}
	return nil
}

// move relocates id inside the scope. Must run inside a transaction.
func (s scope) move(ctx context.Context, tx infra.SQLExecutor, id string, to int) error {
	entries, err := s.lock(ctx, tx)
	if err != nil {
		return err
	}
	changes, err := ordering.Move(entries, id, to)
	if errors.Is(err, ordering.ErrNotInSequence) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.apply(ctx, tx, changes)
}
