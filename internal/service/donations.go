package service

import (
	"context"
	"errors"
	"time"

	"wfm/internal/domain"
)

// RecordDonation is the input of DonationService.Record.
type RecordDonation struct {
	UserID      string
	EventID     string
	Direction   domain.Direction
	Description string
	// Date defaults to today.
	Date  time.Time
	Items []domain.ItemQuantity
}

type DonationService struct {
	donations domain.DonationRepository
	users     domain.UserRepository
	events    domain.EventRepository
	items     domain.ItemRepository
	now       func() time.Time
}

func NewDonationService(donations domain.DonationRepository, users domain.UserRepository, events domain.EventRepository, items domain.ItemRepository) *DonationService {
	return &DonationService{donations: donations, users: users, events: events, items: items, now: time.Now}
}

// Record validates the donation and writes it with all of its lines in one
// transaction. An item listed twice fails with ErrDuplicateItem.
func (s *DonationService) Record(ctx context.Context, in RecordDonation) (*domain.Donation, error) {
	d := &domain.Donation{
		UserID:      in.UserID,
		EventID:     in.EventID,
		Direction:   in.Direction,
		Description: in.Description,
		Date:        in.Date,
	}
	if d.Date.IsZero() {
		d.Date = today(s.now())
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateLines(in.Items); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, d.UserID); err != nil {
		return nil, referenced(err, "user_id", "user does not exist")
	}
	if _, err := s.events.GetByID(ctx, d.EventID); err != nil {
		return nil, referenced(err, "event_id", "event does not exist")
	}
	for _, line := range in.Items {
		item, err := s.items.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, referenced(err, "items", "item "+line.ItemID+" does not exist")
		}
		d.Items = append(d.Items, domain.DonationItem{
			ItemID:          item.ID,
			Quantity:        line.Quantity,
			ItemDescription: item.Description,
			ItemType:        item.Type,
		})
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AddItem lists another item on an existing donation.
func (s *DonationService) AddItem(ctx context.Context, donationID, itemID string, quantity float64) error {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return err
	}
	if _, err := s.donations.GetByID(ctx, donationID); err != nil {
		return err
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return referenced(err, "item_id", "item does not exist")
	}
	return s.donations.AddItem(ctx, domain.DonationItem{DonationID: donationID, ItemID: itemID, Quantity: quantity})
}

func (s *DonationService) UpdateQuantity(ctx context.Context, donationID, itemID string, quantity float64) error {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return err
	}
	return s.donations.UpdateQuantity(ctx, domain.DonationItem{DonationID: donationID, ItemID: itemID, Quantity: quantity})
}

func (s *DonationService) RemoveItem(ctx context.Context, donationID, itemID string) error {
	return s.donations.RemoveItem(ctx, donationID, itemID)
}

func (s *DonationService) ListItems(ctx context.Context, donationID string) ([]domain.DonationItem, error) {
	return s.donations.ListItems(ctx, donationID)
}

func (s *DonationService) Get(ctx context.Context, id string) (*domain.Donation, error) {
	return s.donations.GetByID(ctx, id)
}

func (s *DonationService) ListByEvent(ctx context.Context, eventID string) ([]domain.Donation, error) {
	return s.donations.ListByEvent(ctx, eventID)
}

// Delete refuses while the donation still lists items.
func (s *DonationService) Delete(ctx context.Context, id string) error {
	return s.donations.Delete(ctx, id)
}

// EventTotals sums quantities per item and direction for the event.
func (s *DonationService) EventTotals(ctx context.Context, eventID string) ([]domain.ItemTotal, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.donations.EventTotals(ctx, eventID)
}

// referenced turns a missing referenced row into a validation error on field.
func referenced(err error, field, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid(field, message)
	}
	return err
}

func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
