// ABOUTME: Tests for session restore, login, register, logout, and token helpers
// ABOUTME: Runs the real API client against the fake backend with an in-memory store

package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/apitest"
	"github.com/2389/helpline/internal/store"
)

func newManager(t *testing.T, baseURL string) (*Manager, *store.MockStore) {
	t.Helper()
	st := store.NewMockStore()
	client := api.New(baseURL, api.WithTokenSource(StoredToken{Store: st}))
	return NewManager(client.Auth, st, nil), st
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func storedToken(t *testing.T, st store.Store) string {
	t.Helper()
	tok, err := store.GetOrEmpty(context.Background(), st, store.KeyToken)
	require.NoError(t, err)
	return tok
}

func TestManager_StartsLoading(t *testing.T) {
	srv := apitest.New(t)
	m, _ := newManager(t, srv.URL)

	assert.True(t, m.State().Loading)
	m.Restore(context.Background())

	assert.False(t, m.State().Loading)
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, srv.CallsTo(http.MethodGet, "/auth/me"), "no token, no lookup")
}

func TestManager_RestoreWithValidToken(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodGet, "/auth/me", apitest.JSON(http.StatusOK, map[string]any{
		"user": map[string]any{"id": "u1", "name": "Marta", "role": "manager"},
	}))
	m, st := newManager(t, srv.URL)
	require.NoError(t, st.Set(context.Background(), store.KeyToken, "tok-1"))

	m.Restore(context.Background())

	assert.True(t, m.IsAuthenticated())
	assert.True(t, m.IsManager())
	assert.Equal(t, "tok-1", m.Token(context.Background()))
	require.NotNil(t, m.User())
	assert.Equal(t, "Marta", m.User().DisplayName())

	calls := srv.CallsTo(http.MethodGet, "/auth/me")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok-1", calls[0].Auth)
}

func TestManager_RestoreDiscardsRejectedToken(t *testing.T) {
	tests := []struct {
		name    string
		baseURL func(t *testing.T) string
	}{
		{"unauthorized", func(t *testing.T) string {
			srv := apitest.New(t)
			srv.Handle(http.MethodGet, "/auth/me", apitest.JSON(http.StatusUnauthorized, map[string]any{"error": "expired"}))
			return srv.URL
		}},
		{"unreachable", apitest.UnreachableURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, st := newManager(t, tt.baseURL(t))
			require.NoError(t, st.Set(context.Background(), store.KeyToken, "stale"))

			m.Restore(context.Background())

			assert.False(t, m.IsAuthenticated())
			assert.Nil(t, m.User())
			assert.False(t, m.State().Loading)
			assert.Empty(t, storedToken(t, st))
		})
	}
}

func TestManager_LoginPersistsToken(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/auth/login", apitest.JSON(http.StatusOK, map[string]any{
		"token": "tok-login",
		"user":  map[string]any{"id": "u2", "email": "rui@example.com", "role": "user"},
	}))
	m, st := newManager(t, srv.URL)

	res := m.Login(context.Background(), "rui@example.com", "segredo")

	assert.Equal(t, Result{Success: true}, res)
	assert.True(t, m.IsAuthenticated())
	assert.False(t, m.IsManager())
	assert.Equal(t, "tok-login", storedToken(t, st))

	calls := srv.CallsTo(http.MethodPost, "/auth/login")
	require.Len(t, calls, 1)
	assert.Equal(t, "rui@example.com", calls[0].Body["email"])
}

func TestManager_LoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name:    "invalid credentials ignore the server text",
			handler: apitest.JSON(http.StatusUnauthorized, map[string]any{"error": "Unauthorized"}),
			want:    MsgInvalidCredentials,
		},
		{
			name:    "server message wins",
			handler: apitest.JSON(http.StatusForbidden, map[string]any{"message": "Conta suspensa"}),
			want:    "Conta suspensa",
		},
		{
			name:    "status message without body",
			handler: apitest.JSON(http.StatusInternalServerError, nil),
			want:    api.StatusMessage(http.StatusInternalServerError),
		},
		{
			name:    "undecodable success",
			handler: apitest.Raw(http.StatusOK, "<html>"),
			want:    MsgLoginFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.New(t)
			srv.Handle(http.MethodPost, "/auth/login", tt.handler)
			m, st := newManager(t, srv.URL)

			res := m.Login(context.Background(), "a@b.c", "x")

			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Error)
			assert.False(t, m.IsAuthenticated())
			assert.Empty(t, storedToken(t, st))
		})
	}
}

func TestManager_LoginUnreachable(t *testing.T) {
	m, _ := newManager(t, apitest.UnreachableURL(t))

	res := m.Login(context.Background(), "a@b.c", "x")
	assert.Equal(t, Result{Error: MsgUnreachable}, res)
}

func TestManager_Register(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/auth/register", apitest.JSON(http.StatusCreated, map[string]any{
		"token": "tok-new",
		"user":  map[string]any{"id": "u3", "name": "Lia"},
	}))
	m, st := newManager(t, srv.URL)

	res := m.Register(context.Background(), api.RegisterInput{Name: "Lia", Email: "lia@example.com", Password: "x"})

	assert.True(t, res.Success)
	assert.Equal(t, "tok-new", storedToken(t, st))
	assert.Equal(t, "Lia", m.User().DisplayName())
}

func TestManager_RegisterFailures(t *testing.T) {
	t.Run("conflict message", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Handle(http.MethodPost, "/auth/register",
			apitest.JSON(http.StatusConflict, map[string]any{"error": "E-mail já cadastrado"}))
		m, _ := newManager(t, srv.URL)

		res := m.Register(context.Background(), api.RegisterInput{Email: "x@y.z"})
		assert.Equal(t, Result{Error: "E-mail já cadastrado"}, res)
	})

	t.Run("401 is not special-cased", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Handle(http.MethodPost, "/auth/register", apitest.JSON(http.StatusUnauthorized, nil))
		m, _ := newManager(t, srv.URL)

		res := m.Register(context.Background(), api.RegisterInput{})
		assert.Equal(t, api.StatusMessage(http.StatusUnauthorized), res.Error)
	})

	t.Run("undecodable success", func(t *testing.T) {
		srv := apitest.New(t)
		srv.Handle(http.MethodPost, "/auth/register", apitest.Raw(http.StatusOK, "ok"))
		m, _ := newManager(t, srv.URL)

		res := m.Register(context.Background(), api.RegisterInput{})
		assert.Equal(t, MsgRegisterFailed, res.Error)
	})

	t.Run("unreachable", func(t *testing.T) {
		m, _ := newManager(t, apitest.UnreachableURL(t))
		res := m.Register(context.Background(), api.RegisterInput{})
		assert.Equal(t, MsgUnreachable, res.Error)
	})
}

func TestManager_Logout(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/auth/login", apitest.JSON(http.StatusOK, map[string]any{
		"token": "tok", "user": map[string]any{"id": "u1", "role": "manager"},
	}))
	m, st := newManager(t, srv.URL)
	require.True(t, m.Login(context.Background(), "a@b.c", "x").Success)

	m.Logout(context.Background())

	assert.False(t, m.IsAuthenticated())
	assert.False(t, m.IsManager())
	assert.Nil(t, m.User())
	assert.Empty(t, storedToken(t, st))
}

func TestManager_StateReturnsCopy(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/auth/login", apitest.JSON(http.StatusOK, map[string]any{
		"token": "tok", "user": map[string]any{"id": "u1", "name": "Ana"},
	}))
	m, _ := newManager(t, srv.URL)
	require.True(t, m.Login(context.Background(), "a@b.c", "x").Success)

	s := m.State()
	s.User.Name = "mudado"
	assert.Equal(t, "Ana", m.User().Name)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	got, ok := TokenExpiry(mintToken(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()}))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry(mintToken(t, jwt.MapClaims{"sub": "u1"}))
	assert.False(t, ok, "no exp claim")

	_, ok = TokenExpiry("opaque-session-token")
	assert.False(t, ok)

	_, ok = TokenExpiry("")
	assert.False(t, ok)
}

func TestManager_TokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := mintToken(t, jwt.MapClaims{"exp": exp.Unix()})

	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/auth/login", apitest.JSON(http.StatusOK, map[string]any{"token": tok}))
	m, _ := newManager(t, srv.URL)
	require.True(t, m.Login(context.Background(), "a@b.c", "x").Success)

	got, ok := m.TokenExpiry()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestStoredToken(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, StoredToken{}.Token(ctx))

	st := store.NewMockStore()
	src := StoredToken{Store: st}
	assert.Empty(t, src.Token(ctx))

	require.NoError(t, st.Set(ctx, store.KeyToken, "abc"))
	assert.Equal(t, "abc", src.Token(ctx))
}
