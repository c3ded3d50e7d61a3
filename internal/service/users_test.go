package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"wfm/internal/domain"
	"wfm/internal/mail"
)

type recordingMailer struct {
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestUserService(store *memStore, mailer mail.Mailer) *UserService {
	s := NewUserService(memUsers{store}, mailer, "noreply@wfm.org", zerolog.Nop())
	s.BcryptCost = bcrypt.MinCost
	return s
}

func ptr[T any](v T) *T { return &v }

func TestCreateUserNormalizesAndHashes(t *testing.T) {
	store := newMemStore()
	s := newTestUserService(store, &recordingMailer{})

	u, err := s.CreateUser(context.Background(), NewUser{Email: "  Ana@Example.COM ", Password: "s3cret", FirstName: "Ana"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.Email != "Ana@example.com" {
		t.Fatalf("email = %q", u.Email)
	}
	if u.PasswordHash == "s3cret" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) != nil {
		t.Fatalf("password was not hashed")
	}
	if !u.IsActive || u.IsStaff || u.IsSuperuser {
		t.Fatalf("flags = active %v staff %v super %v", u.IsActive, u.IsStaff, u.IsSuperuser)
	}
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	s := newTestUserService(newMemStore(), &recordingMailer{})
	for _, email := range []string{"", "   ", "no-at-sign", "@example.com"} {
		_, err := s.CreateUser(context.Background(), NewUser{Email: email, FirstName: "Ana"})
		if !errors.Is(err, domain.ErrValidation) || domain.FieldOf(err) != "email" {
			t.Fatalf("CreateUser(%q) error = %v", email, err)
		}
	}
}

func TestCreateUserDuplicateEmailAfterNormalization(t *testing.T) {
	s := newTestUserService(newMemStore(), &recordingMailer{})
	ctx := context.Background()
	if _, err := s.CreateUser(ctx, NewUser{Email: "ana@EXAMPLE.com", FirstName: "Ana"}); err != nil {
		t.Fatalf("first CreateUser() error = %v", err)
	}
	_, err := s.CreateUser(ctx, NewUser{Email: "ana@example.com", FirstName: "Ana"})
	if !errors.Is(err, domain.ErrUniqueness) {
		t.Fatalf("second CreateUser() error = %v", err)
	}
}

func TestCreateSuperuser(t *testing.T) {
	s := newTestUserService(newMemStore(), &recordingMailer{})
	ctx := context.Background()

	u, err := s.CreateSuperuser(ctx, NewUser{Email: "root@wfm.org", Password: "pw", FirstName: "Root"})
	if err != nil {
		t.Fatalf("CreateSuperuser() error = %v", err)
	}
	if !u.IsStaff || !u.IsSuperuser {
		t.Fatalf("superuser flags not forced")
	}

	for _, in := range []NewUser{
		{Email: "a@wfm.org", FirstName: "A", IsStaff: ptr(false)},
		{Email: "b@wfm.org", FirstName: "B", IsSuperuser: ptr(false)},
	} {
		if _, err := s.CreateSuperuser(ctx, in); !errors.Is(err, domain.ErrConfiguration) {
			t.Fatalf("CreateSuperuser(%+v) error = %v", in, err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	store := newMemStore()
	s := newTestUserService(store, &recordingMailer{})
	ctx := context.Background()

	u, _ := s.CreateUser(ctx, NewUser{Email: "ana@example.com", Password: "right", FirstName: "Ana"})
	nopw, _ := s.CreateUser(ctx, NewUser{Email: "nopw@example.com", FirstName: "No"})
	if !strings.HasPrefix(nopw.PasswordHash, unusablePrefix) {
		t.Fatalf("empty password should store an unusable hash, got %q", nopw.PasswordHash)
	}

	if got, err := s.Authenticate(ctx, "ana@EXAMPLE.com", "right"); err != nil || got.ID != u.ID {
		t.Fatalf("Authenticate() = %v, %v", got, err)
	}
	cases := []struct{ email, password string }{
		{"ana@example.com", "wrong"},
		{"missing@example.com", "right"},
		{"nopw@example.com", ""},
		{"nopw@example.com", nopw.PasswordHash},
	}
	for _, c := range cases {
		if _, err := s.Authenticate(ctx, c.email, c.password); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("Authenticate(%q) error = %v", c.email, err)
		}
	}

	if err := s.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if _, err := s.Authenticate(ctx, "ana@example.com", "right"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("inactive user authenticated: %v", err)
	}
}

func TestUpdateProfileCleans(t *testing.T) {
	store := newMemStore()
	s := newTestUserService(store, &recordingMailer{})
	ctx := context.Background()
	u, _ := s.CreateUser(ctx, NewUser{Email: "ana@example.com", FirstName: "Ana"})

	u.Email = " ana@NEW.org"
	u.Type = domain.UserTypeGiver
	if err := s.UpdateProfile(ctx, u); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	got, _ := s.Get(ctx, u.ID)
	if got.Email != "ana@new.org" || got.Type != domain.UserTypeGiver {
		t.Fatalf("stored = %+v", got)
	}

	u.Type = "volunteer"
	if err := s.UpdateProfile(ctx, u); domain.FieldOf(err) != "user_type" {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
}

func TestDeleteUserProtected(t *testing.T) {
	store := newMemStore()
	s := newTestUserService(store, &recordingMailer{})
	ctx := context.Background()
	u, _ := s.CreateUser(ctx, NewUser{Email: "ana@example.com", FirstName: "Ana"})
	store.testimonials["t1"] = domain.Testimonial{ID: "t1", UserID: u.ID, Text: "hi"}

	if err := s.Delete(ctx, u.ID); !errors.Is(err, domain.ErrReferentialIntegrity) {
		t.Fatalf("Delete() error = %v", err)
	}
	delete(store.testimonials, "t1")
	if err := s.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestEmailUser(t *testing.T) {
	mailer := &recordingMailer{}
	s := newTestUserService(newMemStore(), mailer)
	u := &domain.User{ID: "u1", Email: "ana@example.com"}

	if err := s.EmailUser(context.Background(), u, "Hello", "Thanks", ""); err != nil {
		t.Fatalf("EmailUser() error = %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].From != "noreply@wfm.org" || mailer.sent[0].To[0] != "ana@example.com" {
		t.Fatalf("sent = %+v", mailer.sent)
	}

	boom := errors.New("smtp down")
	mailer.err = boom
	err := s.EmailUser(context.Background(), u, "Hello", "Thanks", "staff@wfm.org")
	if !errors.Is(err, domain.ErrDelivery) || !errors.Is(err, boom) {
		t.Fatalf("EmailUser() error = %v", err)
	}
}

func TestEmailUserRejectsMalformedSender(t *testing.T) {
	mailer := &recordingMailer{}
	s := newTestUserService(newMemStore(), mailer)
	u := &domain.User{ID: "u1", Email: "ana@example.com"}

	for _, from := range []string{"staff@wfm.org\r\nBcc: other@example.com", "not an address"} {
		err := s.EmailUser(context.Background(), u, "Hello", "Thanks", from)
		if !errors.Is(err, domain.ErrValidation) || domain.FieldOf(err) != "from" {
			t.Fatalf("EmailUser(from=%q) error = %v", from, err)
		}
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("nothing should be sent, got %+v", mailer.sent)
	}

	if err := s.EmailUser(context.Background(), u, "Hello", "Thanks", "Equipe WFM <staff@wfm.org>"); err != nil {
		t.Fatalf("EmailUser() error = %v", err)
	}
	if got := mailer.sent[0].From; got != `"Equipe WFM" <staff@wfm.org>` {
		t.Fatalf("From = %q", got)
	}
}
