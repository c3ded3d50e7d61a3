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

// PhotoRepositoryPG implements domain.PhotoRepository. Each event is its own
// ordering scope, so writes for one event never touch another event's photos.
type PhotoRepositoryPG struct {
	sql infra.TxRunner
}

func NewPhotoRepository(sql infra.TxRunner) *PhotoRepositoryPG {
	return &PhotoRepositoryPG{sql: sql}
}

// Create appends the photo to its event's gallery.
func (r *PhotoRepositoryPG) Create(ctx context.Context, p *domain.Photo) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		entries, err := photoScope(p.EventID).lock(ctx, tx)
		if err != nil {
			return err
		}
		p.Position = ordering.Next(entries)
		_, err = tx.Exec(ctx, sqlinline.QInsertPhoto, p.ID, p.EventID, p.Description, p.ImageFile, p.Slug, p.Position)
		return translateWrite(err, "")
	})
}

func (r *PhotoRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	return scanPhoto(r.sql.QueryRow(ctx, sqlinline.QSelectPhotoByID, id))
}

// ListByEvent returns the event's gallery in order.
func (r *PhotoRepositoryPG) ListByEvent(ctx context.Context, eventID string) ([]domain.Photo, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPhotosByEvent, eventID)
	if err != nil {
		return nil, translateKey(err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

// Move reorders the photo within its own event.
func (r *PhotoRepositoryPG) Move(ctx context.Context, id string, to int) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		p, err := scanPhoto(tx.QueryRow(ctx, sqlinline.QSelectPhotoByID, id))
		if err != nil {
			return err
		}
		return photoScope(p.EventID).move(ctx, tx, id, to)
	})
}

// Delete removes the photo and closes the gap in its event's gallery.
func (r *PhotoRepositoryPG) Delete(ctx context.Context, id string) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		p, err := scanPhoto(tx.QueryRow(ctx, sqlinline.QSelectPhotoByID, id))
		if err != nil {
			return err
		}
		s := photoScope(p.EventID)
		entries, err := s.lock(ctx, tx)
		if err != nil {
			return err
		}
		changes, err := ordering.Remove(entries, id)
		if errors.Is(err, ordering.ErrNotInSequence) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlinline.QDeletePhoto, id); err != nil {
			return translateDelete(err)
		}
		return s.apply(ctx, tx, changes)
	})
}

func scanPhoto(row pgx.Row) (*domain.Photo, error) {
	var p domain.Photo
	if err := row.Scan(&p.ID, &p.EventID, &p.Description, &p.ImageFile, &p.Slug, &p.Position); err != nil {
		return nil, translateRead(err)
	}
	return &p, nil
}

var _ domain.PhotoRepository = (*PhotoRepositoryPG)(nil)
