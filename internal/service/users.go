// Package service holds the application operations behind the HTTP API and
// the CLI tools. Services validate input, talk to repositories and translate
// lookups of referenced rows into field errors.
package service

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"wfm/internal/domain"
	"wfm/internal/mail"
)

// unusablePrefix marks a password hash no password can match.
const unusablePrefix = "!"

// NewUser carries the fields accepted when registering an account. Nil flags
// mean "not given".
type NewUser struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	CPFCNPJ     string
	Address     string
	CEP         string
	Picture     string
	Type        domain.UserType
	IsStaff     *bool
	IsSuperuser *bool
}

type UserService struct {
	users       domain.UserRepository
	mailer      mail.Mailer
	logger      zerolog.Logger
	defaultFrom string

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	now        func() time.Time
}

func NewUserService(users domain.UserRepository, mailer mail.Mailer, defaultFrom string, logger zerolog.Logger) *UserService {
	return &UserService{
		users:       users,
		mailer:      mailer,
		logger:      logger,
		defaultFrom: defaultFrom,
		BcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// CreateUser registers an ordinary account.
func (s *UserService) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	return s.create(ctx, in, boolOr(in.IsStaff, false), boolOr(in.IsSuperuser, false))
}

// CreateSuperuser registers an account with staff and superuser rights. Passing
// either flag explicitly as false is a configuration error.
func (s *UserService) CreateSuperuser(ctx context.Context, in NewUser) (*domain.User, error) {
	if in.IsStaff != nil && !*in.IsStaff {
		return nil, fmt.Errorf("%w: superuser must have is_staff=true", domain.ErrConfiguration)
	}
	if in.IsSuperuser != nil && !*in.IsSuperuser {
		return nil, fmt.Errorf("%w: superuser must have is_superuser=true", domain.ErrConfiguration)
	}
	return s.create(ctx, in, true, true)
}

func (s *UserService) create(ctx context.Context, in NewUser, staff, superuser bool) (*domain.User, error) {
	u := &domain.User{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		CPFCNPJ:     in.CPFCNPJ,
		Address:     in.Address,
		CEP:         in.CEP,
		Picture:     in.Picture,
		Type:        in.Type,
		IsStaff:     staff,
		IsSuperuser: superuser,
		IsActive:    true,
		DateJoined:  s.now().UTC(),
	}
	if err := s.Clean(u); err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID).Bool("staff", u.IsStaff).Msg("user created")
	return u, nil
}

func (s *UserService) hash(password string) (string, error) {
	if password == "" {
		return unusablePrefix + uuid.NewString(), nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.Invalid("password", "password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Clean normalizes the email and validates the profile.
func (s *UserService) Clean(u *domain.User) error {
	u.Email = domain.NormalizeEmail(u.Email)
	if err := domain.ValidateEmail(u.Email); err != nil {
		return err
	}
	return u.ValidateProfile()
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile cleans and persists the editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, u *domain.User) error {
	if err := s.Clean(u); err != nil {
		return err
	}
	return s.users.UpdateProfile(ctx, u)
}

// Deactivate soft-deletes the account.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.users.SetActive(ctx, id, false)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// Authenticate returns the active user owning email and password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive || password == "" || strings.HasPrefix(u.PasswordHash, unusablePrefix) {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

// EmailUser sends a message to the user. A delivery failure is reported as
// ErrDelivery and leaves stored data untouched.
func (s *UserService) EmailUser(ctx context.Context, u *domain.User, subject, body, from string) error {
	if from == "" {
		from = s.defaultFrom
	}
	sender, err := netmail.ParseAddress(from)
	if err != nil {
		return domain.Invalid("from", "invalid sender address")
	}
	from = sender.Address
	if sender.Name != "" {
		from = sender.String()
	}
	err = s.mailer.Send(ctx, mail.Message{
		From:    from,
		To:      []string{u.Email},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", u.ID).Msg("email delivery failed")
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
