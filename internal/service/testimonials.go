package service

import (
	"context"
	"strings"
	"time"

	"wfm/internal/domain"
)

const defaultTestimonialLimit = 50

type TestimonialService struct {
	testimonials domain.TestimonialRepository
	now          func() time.Time
}

func NewTestimonialService(testimonials domain.TestimonialRepository) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, now: time.Now}
}

// Submit stores a testimonial. A zero date means today.
func (s *TestimonialService) Submit(ctx context.Context, userID, text string, date time.Time) (*domain.Testimonial, error) {
	t := &domain.Testimonial{UserID: userID, Text: strings.TrimSpace(text), Date: date}
	if t.Date.IsZero() {
		t.Date = today(s.now())
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListWithAuthors returns up to limit testimonials, newest first.
func (s *TestimonialService) ListWithAuthors(ctx context.Context, limit int) ([]domain.TestimonialWithAuthor, error) {
	if limit <= 0 {
		limit = defaultTestimonialLimit
	}
	return s.testimonials.ListWithAuthors(ctx, limit)
}

func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	return s.testimonials.Delete(ctx, id)
}
