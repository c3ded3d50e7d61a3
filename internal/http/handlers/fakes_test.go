package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"wfm/internal/domain"
	"wfm/internal/mail"
	"wfm/internal/service"
)

// fakeDB backs the repositories the handler tests touch.
type fakeDB struct {
	mu           sync.Mutex
	users        map[string]domain.User
	events       []domain.Event
	items        map[string]domain.Item
	donations    map[string]domain.Donation
	testimonials []domain.TestimonialWithAuthor
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:     map[string]domain.User{},
		items:     map[string]domain.Item{},
		donations: map[string]domain.Donation{},
	}
}

type fakeUsers struct{ *fakeDB }

func (f fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.users {
		if other.Email == u.Email {
			return domain.Conflict("email", "a record with this email already exists")
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) UpdateProfile(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) SetActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsActive = active
	f.users[id] = u
	return nil
}

func (f fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeEvents struct{ *fakeDB }

func (f fakeEvents) Create(_ context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.events {
		if other.Slug == e.Slug {
			return domain.Conflict("slug", "an event with this slug already exists")
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Position = len(f.events)
	f.events = append(f.events, *e)
	return nil
}

func (f fakeEvents) find(match func(domain.Event) bool) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if match(e) {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeEvents) GetByID(_ context.Context, id string) (*domain.Event, error) {
	return f.find(func(e domain.Event) bool { return e.ID == id })
}

func (f fakeEvents) GetBySlug(_ context.Context, slug string) (*domain.Event, error) {
	return f.find(func(e domain.Event) bool { return e.Slug == slug })
}

func (f fakeEvents) List(context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.Event(nil), f.events...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f fakeEvents) Update(_ context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.events {
		if f.events[i].ID == e.ID {
			f.events[i] = *e
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f fakeEvents) SetStatus(_ context.Context, id string, status domain.EventStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.events {
		if f.events[i].ID == id {
			f.events[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f fakeEvents) Move(context.Context, string, int) error { return nil }

func (f fakeEvents) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.donations {
		if d.EventID == id {
			return domain.Protected("donations", "event is referenced by donations")
		}
	}
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeItems struct{ *fakeDB }

func (f fakeItems) Create(_ context.Context, item *domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	f.items[item.ID] = *item
	return nil
}

func (f fakeItems) GetByID(_ context.Context, id string) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (f fakeItems) List(context.Context) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f fakeItems) Rename(context.Context, string, string) error { return nil }

func (f fakeItems) Delete(context.Context, string) error { return nil }

type fakeDonations struct{ *fakeDB }

func (f fakeDonations) Create(_ context.Context, d *domain.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = uuid.NewString()
	for i := range d.Items {
		d.Items[i].DonationID = d.ID
	}
	f.donations[d.ID] = *d
	return nil
}

func (f fakeDonations) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (f fakeDonations) ListByEvent(context.Context, string) ([]domain.Donation, error) {
	return nil, nil
}

func (f fakeDonations) ListItems(ctx context.Context, id string) ([]domain.DonationItem, error) {
	d, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.Items, nil
}

func (f fakeDonations) AddItem(_ context.Context, line domain.DonationItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[line.DonationID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, existing := range d.Items {
		if existing.ItemID == line.ItemID {
			return domain.DuplicateItem(line.ItemID)
		}
	}
	d.Items = append(d.Items, line)
	f.donations[d.ID] = d
	return nil
}

func (f fakeDonations) UpdateQuantity(context.Context, domain.DonationItem) error { return nil }

func (f fakeDonations) RemoveItem(context.Context, string, string) error { return nil }

func (f fakeDonations) Delete(context.Context, string) error { return nil }

func (f fakeDonations) EventTotals(context.Context, string) ([]domain.ItemTotal, error) {
	return nil, nil
}

type fakeTestimonials struct{ *fakeDB }

func (f fakeTestimonials) Create(_ context.Context, t *domain.Testimonial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = uuid.NewString()
	u := f.users[t.UserID]
	f.testimonials = append(f.testimonials, domain.TestimonialWithAuthor{
		Testimonial:     *t,
		AuthorFirstName: u.FirstName,
		AuthorLastName:  u.LastName,
	})
	return nil
}

func (f fakeTestimonials) ListWithAuthors(_ context.Context, limit int) ([]domain.TestimonialWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.TestimonialWithAuthor(nil), f.testimonials...)
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f fakeTestimonials) Delete(context.Context, string) error { return nil }

type failingMailer struct{ err error }

func (m failingMailer) Send(context.Context, mail.Message) error { return m.err }

const testSecret = "test-secret"

// newTestApp wires an App over fake repositories.
func newTestApp(db *fakeDB, mailer mail.Mailer) *App {
	logger := zerolog.Nop()
	app := NewApp(logger, testSecret, time.Hour)
	users := service.NewUserService(fakeUsers{db}, mailer, "noreply@wfm.test", logger)
	users.BcryptCost = bcrypt.MinCost
	app.Users = users
	app.Events = service.NewEventService(fakeEvents{db})
	app.Items = service.NewItemService(fakeItems{db})
	app.Donations = service.NewDonationService(fakeDonations{db}, fakeUsers{db}, fakeEvents{db}, fakeItems{db})
	app.Testimonials = service.NewTestimonialService(fakeTestimonials{db})
	return app
}

// withParams attaches chi URL params to r.
func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
