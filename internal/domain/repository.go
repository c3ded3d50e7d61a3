package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// EventRepository persists events in one global ordering.
type EventRepository interface {
	// Create appends the event and sets its Position.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	SetStatus(ctx context.Context, id string, status EventStatus) error
	Move(ctx context.Context, id string, to int) error
	// Delete refuses with ErrReferentialIntegrity while photos or donations
	// reference the event.
	Delete(ctx context.Context, id string) error
}

// PhotoRepository persists photos ordered per owning event.
type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByEvent(ctx context.Context, eventID string) ([]Photo, error)
	Move(ctx context.Context, id string, to int) error
	Delete(ctx context.Context, id string) error
}

// ItemRepository handles the item catalog.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	Rename(ctx context.Context, id, description string) error
	Delete(ctx context.Context, id string) error
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	// Create writes the donation and its items in one transaction.
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	ListByEvent(ctx context.Context, eventID string) ([]Donation, error)
	ListItems(ctx context.Context, donationID string) ([]DonationItem, error)
	AddItem(ctx context.Context, line DonationItem) error
	UpdateQuantity(ctx context.Context, line DonationItem) error
	RemoveItem(ctx context.Context, donationID, itemID string) error
	Delete(ctx context.Context, id string) error
	EventTotals(ctx context.Context, eventID string) ([]ItemTotal, error)
}

// TestimonialRepository handles testimonial persistence.
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *Testimonial) error
	ListWithAuthors(ctx context.Context, limit int) ([]TestimonialWithAuthor, error)
	Delete(ctx context.Context, id string) error
}
