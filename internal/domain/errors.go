package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrValidation           = errors.New("validation failed")
	ErrUniqueness           = errors.New("already exists")
	ErrDuplicateItem        = fmt.Errorf("item already listed on donation: %w", ErrUniqueness)
	ErrReferentialIntegrity = errors.New("record is still referenced")
	ErrConfiguration        = errors.New("configuration error")
	ErrDelivery             = errors.New("delivery failed")
)

// FieldError reports a failure tied to one input field. It unwraps to one of
// the sentinels above so callers can branch with errors.Is.
type FieldError struct {
	Field   string
	Message string
	Kind    error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error { return e.Kind }

// Invalid builds a validation failure for field.
func Invalid(field, message string) error {
	return &FieldError{Field: field, Message: message, Kind: ErrValidation}
}

// Conflict builds a uniqueness failure for field.
func Conflict(field, message string) error {
	return &FieldError{Field: field, Message: message, Kind: ErrUniqueness}
}

// Protected builds a referential integrity failure naming the referencing relation.
func Protected(field, message string) error {
	return &FieldError{Field: field, Message: message, Kind: ErrReferentialIntegrity}
}

// DuplicateItem reports an item listed twice on one donation.
func DuplicateItem(itemID string) error {
	return &FieldError{Field: "items", Message: fmt.Sprintf("item %s is already listed on this donation", itemID), Kind: ErrDuplicateItem}
}

// FieldOf returns the field name carried by err, if any.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
