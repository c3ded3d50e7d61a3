package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wfm/internal/domain"
	"wfm/internal/service"
)

type userDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone,omitempty"`
	CPFCNPJ     string    `json:"cpf_cnpj,omitempty"`
	Address     string    `json:"address,omitempty"`
	CEP         string    `json:"cep,omitempty"`
	PictureURL  string    `json:"picture_url,omitempty"`
	UserType    string    `json:"user_type"`
	TypeLabel   string    `json:"user_type_label,omitempty"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
}

func (a *App) toUserDTO(u *domain.User) userDTO {
	dto := userDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Phone:       u.Phone,
		CPFCNPJ:     u.CPFCNPJ,
		Address:     u.Address,
		CEP:         u.CEP,
		UserType:    string(u.Type),
		TypeLabel:   u.Type.Label(),
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined,
	}
	if a.Files != nil {
		dto.PictureURL = a.Files.URL(u.Picture)
	}
	return dto
}

type userRequest struct {
	Email       *string `json:"email"`
	Password    string  `json:"password"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	CPFCNPJ     *string `json:"cpf_cnpj"`
	Address     *string `json:"address"`
	CEP         *string `json:"cep"`
	Picture     *string `json:"picture"`
	UserType    *string `json:"user_type"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// UsersCreate registers a user. is_superuser=true creates a superuser.
func (a *App) UsersCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !a.decode(w, r, &req) {
		return
	}
	in := service.NewUser{
		Email:       str(req.Email),
		Password:    req.Password,
		FirstName:   str(req.FirstName),
		LastName:    str(req.LastName),
		Phone:       str(req.Phone),
		CPFCNPJ:     str(req.CPFCNPJ),
		Address:     str(req.Address),
		CEP:         str(req.CEP),
		Picture:     str(req.Picture),
		Type:        domain.UserType(str(req.UserType)),
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	}
	create := a.Users.CreateUser
	if req.IsSuperuser != nil && *req.IsSuperuser {
		create = a.Users.CreateSuperuser
	}
	u, err := create(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, a.toUserDTO(u))
}

func (a *App) UsersGet(w http.ResponseWriter, r *http.Request) {
	u, err := a.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.toUserDTO(u))
}

// UsersPatch edits profile fields. Credentials and flags are not editable here.
func (a *App) UsersPatch(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Password != "" || req.IsStaff != nil || req.IsSuperuser != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "password and flags cannot be patched")
		return
	}
	u, err := a.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Email, req.Email)
	set(&u.FirstName, req.FirstName)
	set(&u.LastName, req.LastName)
	set(&u.Phone, req.Phone)
	set(&u.CPFCNPJ, req.CPFCNPJ)
	set(&u.Address, req.Address)
	set(&u.CEP, req.CEP)
	set(&u.Picture, req.Picture)
	if req.UserType != nil {
		u.Type = domain.UserType(*req.UserType)
	}
	if err := a.Users.UpdateProfile(r.Context(), u); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.toUserDTO(u))
}

func (a *App) UsersDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := a.Users.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) UsersDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type emailRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from"`
}

func (a *App) UsersEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Subject == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "subject required")
		return
	}
	u, err := a.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Users.EmailUser(r.Context(), u, req.Subject, req.Body, req.From); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
