package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wfm/internal/domain"
	"wfm/internal/infra"
	"wfm/internal/sqlinline"
)

// ItemRepositoryPG implements domain.ItemRepository.
type ItemRepositoryPG struct {
	sql infra.TxRunner
}

func NewItemRepository(sql infra.TxRunner) *ItemRepositoryPG {
	return &ItemRepositoryPG{sql: sql}
}

func (r *ItemRepositoryPG) Create(ctx context.Context, item *domain.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertItem, item.ID, item.Description, string(item.Type))
	return translateWrite(err, "")
}

func (r *ItemRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return scanItem(r.sql.QueryRow(ctx, sqlinline.QSelectItemByID, id))
}

func (r *ItemRepositoryPG) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepositoryPG) Rename(ctx context.Context, id, description string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QRenameItem, id, description)
	if err != nil {
		return translateKey(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an item no donation lists.
func (r *ItemRepositoryPG) Delete(ctx context.Context, id string) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		var refs int64
		if err := tx.QueryRow(ctx, sqlinline.QCountItemReferences, id).Scan(&refs); err != nil {
			return translateKey(err)
		}
		if refs > 0 {
			return domain.Protected("donation_items", "item is listed on donations")
		}
		tag, err := tx.Exec(ctx, sqlinline.QDeleteItem, id)
		if err != nil {
			return translateDelete(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	if err := row.Scan(&item.ID, &item.Description, &item.Type); err != nil {
		return nil, translateRead(err)
	}
	return &item, nil
}

var _ domain.ItemRepository = (*ItemRepositoryPG)(nil)
