package repo

import (
	"context"

	"github.com/google/uuid"

	"wfm/internal/domain"
	"wfm/internal/infra"
	"wfm/internal/sqlinline"
)

// TestimonialRepositoryPG implements domain.TestimonialRepository.
type TestimonialRepositoryPG struct {
	sql infra.TxRunner
}

func NewTestimonialRepository(sql infra.TxRunner) *TestimonialRepositoryPG {
	return &TestimonialRepositoryPG{sql: sql}
}

func (r *TestimonialRepositoryPG) Create(ctx context.Context, t *domain.Testimonial) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertTestimonial, t.ID, t.UserID, t.Text, t.Date)
	return translateWrite(err, "")
}

// ListWithAuthors reads testimonials joined with their author's name in one
// query, newest first.
func (r *TestimonialRepositoryPG) ListWithAuthors(ctx context.Context, limit int) ([]domain.TestimonialWithAuthor, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListTestimonialsWithAuthors, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.TestimonialWithAuthor
	for rows.Next() {
		var t domain.TestimonialWithAuthor
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Date, &t.AuthorFirstName, &t.AuthorLastName); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TestimonialRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteTestimonial, id)
	if err != nil {
		return translateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.TestimonialRepository = (*TestimonialRepositoryPG)(nil)
