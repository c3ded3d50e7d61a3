package domain

import (
	"math"
	"time"
)

// ItemType distinguishes money from physical goods.
type ItemType string

const (
	ItemTypeMoney   ItemType = "dinheiro"
	ItemTypeProduct ItemType = "produto"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeMoney || t == ItemTypeProduct
}

// Item is a catalog entry donations refer to.
type Item struct {
	ID          string
	Description string
	Type        ItemType
}

func (i Item) Validate() error {
	if err := validateDescription(i.Description, true); err != nil {
		return err
	}
	if !i.Type.Valid() {
		return Invalid("item_type", "item type must be dinheiro or produto")
	}
	return nil
}

// Direction tells whether goods enter or leave the inventory.
type Direction string

const (
	DirectionIn  Direction = "entrada"
	DirectionOut Direction = "saida"
)

func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Donation records goods or money moving for one event.
type Donation struct {
	ID          string
	UserID      string
	EventID     string
	Direction   Direction
	Description string
	Date        time.Time
	Items       []DonationItem
}

// Validate checks the donation header. Lines are checked with ValidateLines.
func (d Donation) Validate() error {
	if d.UserID == "" {
		return Invalid("user_id", "user is required")
	}
	if d.EventID == "" {
		return Invalid("event_id", "event is required")
	}
	if !d.Direction.Valid() {
		return Invalid("direction", "direction must be entrada or saida")
	}
	return validateDescription(d.Description, false)
}

// DonationItem is one (donation, item) line. A donation lists an item once.
type DonationItem struct {
	DonationID      string
	ItemID          string
	Quantity        float64
	ItemDescription string
	ItemType        ItemType
}

// ItemQuantity is an input line for recording a donation.
type ItemQuantity struct {
	ItemID   string
	Quantity float64
}

// ValidateQuantity requires a finite, strictly positive amount.
func ValidateQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return Invalid("quantity", "quantity must be a number")
	}
	if q <= 0 {
		return Invalid("quantity", "quantity must be greater than zero")
	}
	return nil
}

// ValidateLines checks every line and rejects an item listed twice.
func ValidateLines(lines []ItemQuantity) error {
	if len(lines) == 0 {
		return Invalid("items", "at least one item is required")
	}
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.ItemID == "" {
			return Invalid("items", "item is required")
		}
		if _, dup := seen[line.ItemID]; dup {
			return DuplicateItem(line.ItemID)
		}
		seen[line.ItemID] = struct{}{}
		if err := ValidateQuantity(line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// ItemTotal sums quantities of one item per direction for an event.
type ItemTotal struct {
	ItemID          string
	ItemDescription string
	ItemType        ItemType
	Direction       Direction
	Total           float64
}
