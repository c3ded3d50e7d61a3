package domain

import (
	"strings"
	"time"
)

const MaxTestimonialLen = 500

// Testimonial is a short public statement written by a user.
type Testimonial struct {
	ID     string
	UserID string
	Text   string
	Date   time.Time
}

func (t Testimonial) Validate() error {
	if t.UserID == "" {
		return Invalid("user_id", "author is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return Invalid("text", "text is required")
	}
	if runeLen(t.Text) > MaxTestimonialLen {
		return Invalid("text", "text must be at most 500 characters")
	}
	return nil
}

// TestimonialWithAuthor carries the public author fields read alongside the row.
type TestimonialWithAuthor struct {
	Testimonial
	AuthorFirstName string
	AuthorLastName  string
}

// AuthorName returns the author's display name.
func (t TestimonialWithAuthor) AuthorName() string {
	return User{FirstName: t.AuthorFirstName, LastName: t.AuthorLastName}.FullName()
}
