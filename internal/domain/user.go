package domain

import (
	"net/mail"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserType enumerates the roles a person plays in the organization.
type UserType string

const (
	UserTypeNone        UserType = ""
	UserTypeAdmin       UserType = "admin"
	UserTypeManager     UserType = "gestor"
	UserTypeStaff       UserType = "staff"
	UserTypeGiver       UserType = "giver"
	UserTypeBeneficiary UserType = "beneficiary"
)

// Valid reports whether t belongs to the closed set. The empty type is allowed
// and means the role was not classified yet.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeNone, UserTypeAdmin, UserTypeManager, UserTypeStaff, UserTypeGiver, UserTypeBeneficiary:
		return true
	}
	return false
}

// Label returns the Portuguese display label used on the public pages.
func (t UserType) Label() string {
	switch t {
	case UserTypeAdmin:
		return "Administrador BD"
	case UserTypeManager:
		return "Gestor WFM"
	case UserTypeStaff:
		return "Apoiador"
	case UserTypeGiver:
		return "Doador"
	case UserTypeBeneficiary:
		return "Beneficiário"
	}
	return ""
}

// Field bounds for user profile data.
const (
	MaxNameLen    = 150
	MaxPhoneLen   = 50
	MaxCPFLen     = 50
	MaxAddressLen = 200
	MaxCEPLen     = 10
)

// User is an account. The normalized email is the login identity.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	CPFCNPJ      string
	Address      string
	CEP          string
	Picture      string
	Type         UserType
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
}

// FullName joins first and last name, trimmed and title cased.
func (u User) FullName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	// Casers keep state between calls and must not be shared across goroutines.
	return cases.Title(language.BrazilianPortuguese).String(full)
}

// ShortName returns the first name.
func (u User) ShortName() string {
	return u.FirstName
}

// NormalizeEmail trims the address and lower-cases its domain part. The local
// part is kept as typed. Applying it twice yields the same value.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// ValidateEmail checks that email is a bare address with a local and a domain part.
func ValidateEmail(email string) error {
	if email == "" {
		return Invalid("email", "email must be set")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return Invalid("email", "enter a valid email address")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return Invalid("email", "enter a valid email address")
	}
	return nil
}

// ValidateProfile checks the bounded profile fields.
func (u User) ValidateProfile() error {
	if strings.TrimSpace(u.FirstName) == "" {
		return Invalid("first_name", "first name is required")
	}
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"first_name", u.FirstName, MaxNameLen},
		{"last_name", u.LastName, MaxNameLen},
		{"phone", u.Phone, MaxPhoneLen},
		{"cpf_cnpj", u.CPFCNPJ, MaxCPFLen},
		{"address", u.Address, MaxAddressLen},
		{"cep", u.CEP, MaxCEPLen},
	}
	for _, c := range checks {
		if runeLen(c.value) > c.max {
			return Invalid(c.field, "value is too long")
		}
	}
	if !u.Type.Valid() {
		return Invalid("user_type", "unknown user type")
	}
	return nil
}

func runeLen(s string) int {
	return len([]rune(s))
}
