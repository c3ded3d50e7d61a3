package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func serveWithToken(t *testing.T, h http.Handler, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestSignAndVerify(t *testing.T) {
	token, err := SignJWT(testSecret, "u1", TokenClaims{Email: "ana@example.com", Staff: true}, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT() error = %v", err)
	}
	claims, err := VerifyJWT(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyJWT() error = %v", err)
	}
	if claims.Subject != "u1" || !claims.Staff || claims.Email != "ana@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := VerifyJWT("other-secret", token); err == nil {
		t.Fatalf("VerifyJWT() accepted a token signed with another secret")
	}
	expired, _ := SignJWT(testSecret, "u1", TokenClaims{}, -time.Minute)
	if _, err := VerifyJWT(testSecret, expired); err == nil {
		t.Fatalf("VerifyJWT() accepted an expired token")
	}
}

func TestRequireStaff(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == "" {
			t.Fatalf("user id missing from context")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	h := AuthJWT(testSecret)(RequireStaff(ok))

	staff, _ := SignJWT(testSecret, "staff-1", TokenClaims{Staff: true}, time.Hour)
	giver, _ := SignJWT(testSecret, "giver-1", TokenClaims{}, time.Hour)

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"staff", staff, http.StatusNoContent},
		{"non staff", giver, http.StatusForbidden},
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "a.b.c", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		if got := serveWithToken(t, h, tc.token); got != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRequireActiveUser(t *testing.T) {
	active := map[string]bool{"ana": true, "bob": false}
	check := func(_ context.Context, id string) (bool, error) {
		if id == "broken" {
			return false, errors.New("db down")
		}
		return active[id], nil
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := AuthJWT(testSecret)(RequireActiveUser(check)(ok))

	cases := []struct {
		subject string
		want    int
	}{
		{"ana", http.StatusNoContent},
		{"bob", http.StatusUnauthorized},
		{"gone", http.StatusUnauthorized},
		{"broken", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		token, _ := SignJWT(testSecret, tc.subject, TokenClaims{Staff: true}, time.Hour)
		if got := serveWithToken(t, h, token); got != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.subject, got, tc.want)
		}
	}
}
