package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notsus/site-backend/internal/service"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/models"
)

// credentialsBody serialises a credentials payload to a request body string.
func credentialsBody(t *testing.T, email, password string) string {
	t.Helper()
	b, err := json.Marshal(credentials{Email: email, Password: password})
	require.NoError(t, err)
	return string(b)
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		registerFn: func(_ context.Context, email, _ string) (models.User, models.Token, error) {
			return models.User{UserID: 1, Email: email}, stubToken(signedToken), nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(credentialsBody(t, "alice@example.com", "abcd1234")))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, signedToken, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Validation error", body.Error)
}

func TestRegister_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "email required", err: service.ErrValidationEmailRequired},
		{name: "weak password", err: service.ErrValidationPasswordWeak},
		{name: "email taken", err: service.ErrEmailAlreadyRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				registerFn: func(_ context.Context, _, _ string) (models.User, models.Token, error) {
					return models.User{}, models.Token{}, tt.err
				},
			}
			h := newTestHandler(&service.Services{AuthService: auth})

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(credentialsBody(t, "alice@example.com", "x")))
			rec := httptest.NewRecorder()

			h.register(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Validation error", body.Error)
		})
	}
}

func TestRegister_InternalError(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _ string) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, errors.New("database is down")
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(credentialsBody(t, "alice@example.com", "abcd1234")))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// internal details must not leak to the client
	assert.NotContains(t, rec.Body.String(), "database is down")
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, email, _ string) (models.User, models.Token, error) {
			return models.User{UserID: 7, Email: email, IsAdmin: true}, stubToken(signedToken), nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(credentialsBody(t, "admin@example.com", "abcd1234")))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, signedToken, resp.Token)
	assert.Equal(t, int64(7), resp.User.UserID)
	assert.True(t, resp.User.IsAdmin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, service.ErrInvalidCredentials
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(credentialsBody(t, "alice@example.com", "wrong")))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Authentication failed", body.Error)
	assert.Equal(t, "invalid email or password", body.Message)
}

func TestLogin_Lockout(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, &service.LockoutError{Remaining: 10 * time.Minute}
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(credentialsBody(t, "alice@example.com", "abcd1234")))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Account locked", body.Error)
	assert.Contains(t, body.Message, "10 minutes")
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	auth := &mockAuthService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Email: "alice@example.com"}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(contextWithClaims(req.Context(), &models.Claims{UserID: 7, Email: "alice@example.com"}))
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp["user"].UserID)
	assert.Equal(t, "alice@example.com", resp["user"].Email)
}

func TestMe_NoClaims(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_UserGone(t *testing.T) {
	auth := &mockAuthService{
		getUserFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(contextWithClaims(req.Context(), &models.Claims{UserID: 42}))
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
