package handlers

import (
	"context"
	"errors"
	"net/http"

	"wfm/internal/domain"
	"wfm/internal/middleware"
)

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string  `json:"token"`
	ExpiresIn int64   `json:"expires_in"`
	User      userDTO `json:"user"`
}

// AuthToken exchanges email and password for a bearer token.
func (a *App) AuthToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}
	u, err := a.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.fail(w, r, err)
		return
	}
	token, err := middleware.SignJWT(a.JWTSecret, u.ID, middleware.TokenClaims{
		Email:     u.Email,
		Staff:     u.IsStaff,
		Superuser: u.IsSuperuser,
	}, a.JWTTTL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresIn: int64(a.JWTTTL.Seconds()),
		User:      a.toUserDTO(u),
	})
}

// ActiveUser reports whether the user still exists and is active. Signed-in
// routes consult it on every request, so deactivation takes effect before the
// user's token expires.
func (a *App) ActiveUser(ctx context.Context, id string) (bool, error) {
	u, err := a.Users.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}

// Me returns the authenticated user's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	u, err := a.Users.Get(r.Context(), userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.toUserDTO(u))
}
