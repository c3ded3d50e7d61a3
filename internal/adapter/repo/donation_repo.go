package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wfm/internal/domain"
	"wfm/internal/infra"
	"wfm/internal/sqlinline"
)

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.TxRunner
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.TxRunner) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts the donation and all of its item lines atomically.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		if _, err := tx.Exec(ctx, sqlinline.QInsertDonation, d.ID, d.UserID, d.EventID, string(d.Direction), d.Description, d.Date); err != nil {
			return translateWrite(err, "")
		}
		for i := range d.Items {
			d.Items[i].DonationID = d.ID
			line := d.Items[i]
			if _, err := tx.Exec(ctx, sqlinline.QInsertDonationItem, line.ItemID, d.ID, line.Quantity); err != nil {
				return translateWrite(err, line.ItemID)
			}
		}
		return nil
	})
}

// GetByID returns the donation with its item lines.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	d, err := scanDonation(r.sql.QueryRow(ctx, sqlinline.QSelectDonationByID, id))
	if err != nil {
		return nil, err
	}
	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return d, nil
}

// ListByEvent returns the event's donations without their item lines.
func (r *DonationRepositoryPG) ListByEvent(ctx context.Context, eventID string) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonationsByEvent, eventID)
	if err != nil {
		return nil, translateKey(err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListItems returns the donation's lines ordered by (donation, item).
func (r *DonationRepositoryPG) ListItems(ctx context.Context, donationID string) ([]domain.DonationItem, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonationItems, donationID)
	if err != nil {
		return nil, translateKey(err)
	}
	defer rows.Close()

	var lines []domain.DonationItem
	for rows.Next() {
		var line domain.DonationItem
		if err := rows.Scan(&line.DonationID, &line.ItemID, &line.Quantity, &line.ItemDescription, &line.ItemType); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddItem lists a new item on an existing donation.
func (r *DonationRepositoryPG) AddItem(ctx context.Context, line domain.DonationItem) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertDonationItem, line.ItemID, line.DonationID, line.Quantity)
	return translateWrite(err, line.ItemID)
}

func (r *DonationRepositoryPG) UpdateQuantity(ctx context.Context, line domain.DonationItem) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateDonationItemQuantity, line.DonationID, line.ItemID, line.Quantity)
	if err != nil {
		return translateKey(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DonationRepositoryPG) RemoveItem(ctx context.Context, donationID, itemID string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDonationItem, donationID, itemID)
	if err != nil {
		return translateKey(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a donation that no longer lists any item.
func (r *DonationRepositoryPG) Delete(ctx context.Context, id string) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		var lines int64
		if err := tx.QueryRow(ctx, sqlinline.QCountDonationItems, id).Scan(&lines); err != nil {
			return translateKey(err)
		}
		if lines > 0 {
			return domain.Protected("donation_items", "donation still lists items")
		}
		tag, err := tx.Exec(ctx, sqlinline.QDeleteDonation, id)
		if err != nil {
			return translateDelete(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// EventTotals sums quantities per item and direction for one event.
func (r *DonationRepositoryPG) EventTotals(ctx context.Context, eventID string) ([]domain.ItemTotal, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QEventItemTotals, eventID)
	if err != nil {
		return nil, translateKey(err)
	}
	defer rows.Close()

	var totals []domain.ItemTotal
	for rows.Next() {
		var t domain.ItemTotal
		if err := rows.Scan(&t.ItemID, &t.ItemDescription, &t.ItemType, &t.Direction, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	if err := row.Scan(&d.ID, &d.UserID, &d.EventID, &d.Direction, &d.Description, &d.Date); err != nil {
		return nil, translateRead(err)
	}
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
