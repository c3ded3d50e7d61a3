package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"wfm/internal/domain"
	"wfm/internal/ordering"
	"wfm/internal/storage"
)

// memStore is an in-memory implementation of every repository interface with
// the same integrity rules as the PostgreSQL schema.
type memStore struct {
	mu           sync.Mutex
	users        map[string]domain.User
	events       map[string]domain.Event
	photos       map[string]domain.Photo
	items        map[string]domain.Item
	donations    map[string]domain.Donation
	lines        map[[2]string]domain.DonationItem
	testimonials map[string]domain.Testimonial
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]domain.User{},
		events:       map[string]domain.Event{},
		photos:       map[string]domain.Photo{},
		items:        map[string]domain.Item{},
		donations:    map[string]domain.Donation{},
		lines:        map[[2]string]domain.DonationItem{},
		testimonials: map[string]domain.Testimonial{},
	}
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Email == u.Email {
			return domain.Conflict("email", "a record with this email already exists")
		}
	}
	newID(&u.ID)
	m.users[u.ID] = *u
	return nil
}

func (m memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memUsers) UpdateProfile(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Email, cur.FirstName, cur.LastName = u.Email, u.FirstName, u.LastName
	cur.Phone, cur.CPFCNPJ, cur.Address, cur.CEP = u.Phone, u.CPFCNPJ, u.Address, u.CEP
	cur.Picture, cur.Type = u.Picture, u.Type
	m.users[u.ID] = cur
	return nil
}

func (m memUsers) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsActive = active
	m.users[id] = u
	return nil
}

func (m memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.donations {
		if d.UserID == id {
			return domain.Protected("donations", "user has recorded donations")
		}
	}
	for _, t := range m.testimonials {
		if t.UserID == id {
			return domain.Protected("testimonials", "user has testimonials")
		}
	}
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type memEvents struct{ *memStore }

func (m memEvents) entries() []ordering.Entry {
	var out []ordering.Entry
	for _, e := range m.events {
		out = append(out, ordering.Entry{ID: e.ID, Position: e.Position})
	}
	return out
}

func (m memEvents) apply(changes []ordering.Change) {
	for _, c := range changes {
		e := m.events[c.ID]
		e.Position = c.Position
		m.events[c.ID] = e
	}
}

func (m memEvents) Create(_ context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.events {
		if other.Slug == e.Slug {
			return domain.Conflict("slug", "a record with this slug already exists")
		}
	}
	newID(&e.ID)
	e.Position = ordering.Next(m.entries())
	m.events[e.ID] = *e
	return nil
}

func (m memEvents) GetByID(_ context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (m memEvents) GetBySlug(_ context.Context, slug string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.Slug == slug {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memEvents) List(context.Context) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m memEvents) Update(_ context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.events[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Description, cur.Date, cur.Slug = e.Description, e.Date, e.Slug
	m.events[e.ID] = cur
	return nil
}

func (m memEvents) SetStatus(_ context.Context, id string, status domain.EventStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	m.events[id] = e
	return nil
}

func (m memEvents) Move(_ context.Context, id string, to int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	changes, err := ordering.Move(m.entries(), id, to)
	if err != nil {
		return domain.ErrNotFound
	}
	m.apply(changes)
	return nil
}

func (m memEvents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.photos {
		if p.EventID == id {
			return domain.Protected("photos", "event still has photos")
		}
	}
	for _, d := range m.donations {
		if d.EventID == id {
			return domain.Protected("donations", "event still has donations")
		}
	}
	changes, err := ordering.Remove(m.entries(), id)
	if err != nil {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	m.apply(changes)
	return nil
}

type memPhotos struct{ *memStore }

func (m memPhotos) entries(eventID string) []ordering.Entry {
	var out []ordering.Entry
	for _, p := range m.photos {
		if p.EventID == eventID {
			out = append(out, ordering.Entry{ID: p.ID, Position: p.Position})
		}
	}
	return out
}

func (m memPhotos) apply(changes []ordering.Change) {
	for _, c := range changes {
		p := m.photos[c.ID]
		p.Position = c.Position
		m.photos[c.ID] = p
	}
}

func (m memPhotos) Create(_ context.Context, p *domain.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[p.EventID]; !ok {
		return domain.Invalid("event_id", "referenced record does not exist")
	}
	newID(&p.ID)
	p.Position = ordering.Next(m.entries(p.EventID))
	m.photos[p.ID] = *p
	return nil
}

func (m memPhotos) GetByID(_ context.Context, id string) (*domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m memPhotos) ListByEvent(_ context.Context, eventID string) ([]domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Photo
	for _, p := range m.photos {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m memPhotos) Move(_ context.Context, id string, to int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return domain.ErrNotFound
	}
	changes, err := ordering.Move(m.entries(p.EventID), id, to)
	if err != nil {
		return domain.ErrNotFound
	}
	m.apply(changes)
	return nil
}

func (m memPhotos) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return domain.ErrNotFound
	}
	changes, _ := ordering.Remove(m.entries(p.EventID), id)
	delete(m.photos, id)
	m.apply(changes)
	return nil
}

type memItems struct{ *memStore }

func (m memItems) Create(_ context.Context, item *domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	newID(&item.ID)
	m.items[item.ID] = *item
	return nil
}

func (m memItems) GetByID(_ context.Context, id string) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (m memItems) List(context.Context) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Item
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, nil
}

func (m memItems) Rename(_ context.Context, id, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Description = description
	m.items[id] = item
	return nil
}

func (m memItems) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.lines {
		if key[1] == id {
			return domain.Protected("donation_items", "item is listed on donations")
		}
	}
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memDonations struct{ *memStore }

func (m memDonations) Create(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	newID(&d.ID)
	staged := map[[2]string]domain.DonationItem{}
	for i := range d.Items {
		d.Items[i].DonationID = d.ID
		key := [2]string{d.ID, d.Items[i].ItemID}
		if _, dup := staged[key]; dup {
			return domain.DuplicateItem(d.Items[i].ItemID)
		}
		staged[key] = d.Items[i]
	}
	header := *d
	header.Items = nil
	m.donations[d.ID] = header
	for k, v := range staged {
		m.lines[k] = v
	}
	return nil
}

func (m memDonations) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	m.mu.Lock()
	d, ok := m.donations[id]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	items, _ := m.ListItems(ctx, id)
	d.Items = items
	return &d, nil
}

func (m memDonations) ListByEvent(_ context.Context, eventID string) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Donation
	for _, d := range m.donations {
		if d.EventID == eventID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m memDonations) ListItems(_ context.Context, donationID string) ([]domain.DonationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DonationItem
	for key, line := range m.lines {
		if key[0] == donationID {
			item := m.items[line.ItemID]
			line.ItemDescription, line.ItemType = item.Description, item.Type
			out = append(out, line)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (m memDonations) AddItem(_ context.Context, line domain.DonationItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{line.DonationID, line.ItemID}
	if _, dup := m.lines[key]; dup {
		return domain.DuplicateItem(line.ItemID)
	}
	m.lines[key] = line
	return nil
}

func (m memDonations) UpdateQuantity(_ context.Context, line domain.DonationItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{line.DonationID, line.ItemID}
	cur, ok := m.lines[key]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = line.Quantity
	m.lines[key] = cur
	return nil
}

func (m memDonations) RemoveItem(_ context.Context, donationID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{donationID, itemID}
	if _, ok := m.lines[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.lines, key)
	return nil
}

func (m memDonations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.lines {
		if key[0] == id {
			return domain.Protected("donation_items", "donation still lists items")
		}
	}
	if _, ok := m.donations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.donations, id)
	return nil
}

func (m memDonations) EventTotals(_ context.Context, eventID string) ([]domain.ItemTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sums := map[[2]string]*domain.ItemTotal{}
	for key, line := range m.lines {
		d := m.donations[key[0]]
		if d.EventID != eventID {
			continue
		}
		k := [2]string{line.ItemID, string(d.Direction)}
		if sums[k] == nil {
			item := m.items[line.ItemID]
			sums[k] = &domain.ItemTotal{ItemID: item.ID, ItemDescription: item.Description, ItemType: item.Type, Direction: d.Direction}
		}
		sums[k].Total += line.Quantity
	}
	var out []domain.ItemTotal
	for _, t := range sums {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemDescription != out[j].ItemDescription {
			return out[i].ItemDescription < out[j].ItemDescription
		}
		return out[i].Direction < out[j].Direction
	})
	return out, nil
}

type memTestimonials struct{ *memStore }

func (m memTestimonials) Create(_ context.Context, t *domain.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[t.UserID]; !ok {
		return domain.Invalid("user_id", "referenced record does not exist")
	}
	newID(&t.ID)
	m.testimonials[t.ID] = *t
	return nil
}

func (m memTestimonials) ListWithAuthors(_ context.Context, limit int) ([]domain.TestimonialWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TestimonialWithAuthor
	for _, t := range m.testimonials {
		u := m.users[t.UserID]
		out = append(out, domain.TestimonialWithAuthor{Testimonial: t, AuthorFirstName: u.FirstName, AuthorLastName: u.LastName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m memTestimonials) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.testimonials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.testimonials, id)
	return nil
}

// memFiles is an in-memory FileStore.
type memFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFiles() *memFiles { return &memFiles{files: map[string][]byte{}} }

func (f *memFiles) Write(_ context.Context, key string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[key] = data
	return key, nil
}

func (f *memFiles) Read(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[key]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return data, nil
}

func (f *memFiles) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, key)
	return nil
}

var (
	_ domain.UserRepository        = memUsers{}
	_ domain.EventRepository       = memEvents{}
	_ domain.PhotoRepository       = memPhotos{}
	_ domain.ItemRepository        = memItems{}
	_ domain.DonationRepository    = memDonations{}
	_ domain.TestimonialRepository = memTestimonials{}
	_ FileStore                    = (*memFiles)(nil)
)
