// ABOUTME: Session manager: restore, login, register, and logout against the auth API
// ABOUTME: Maps auth failures to the user-facing messages shown by the client

package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/store"
)

// User-facing auth failure messages.
const (
	MsgInvalidCredentials = "E-mail ou senha inválidos."
	MsgUnreachable        = "Não foi possível conectar ao servidor. Tente novamente mais tarde."
	MsgLoginFailed        = "Ocorreu um erro ao fazer login."
	MsgRegisterFailed     = "Ocorreu um erro ao registrar."
)

// Authenticator is the auth call group. *api.AuthAPI satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, in api.RegisterInput) (*api.AuthResponse, error)
	Me(ctx context.Context) (*api.MeResponse, error)
}

// Result is the outcome of Login or Register. Error is set when Success is false.
type Result struct {
	Success bool
	Error   string
}

// State is a copy of the session.
type State struct {
	User    *api.User
	Token   string
	Loading bool
}

// Manager owns the session for the lifetime of the process. It is safe for
// concurrent use.
type Manager struct {
	auth   Authenticator
	store  store.Store
	logger *slog.Logger

	mu      sync.RWMutex
	user    *api.User
	token   string
	loading bool
}

// NewManager creates a Manager. It reports Loading until Restore finishes.
func NewManager(auth Authenticator, st store.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default().With("component", "session")
	}
	return &Manager{
		auth:    auth,
		store:   st,
		logger:  logger,
		loading: true,
	}
}

// Restore resumes the session from the stored token. A token the backend
// rejects is deleted and the session stays signed out.
func (m *Manager) Restore(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	stored, err := store.GetOrEmpty(ctx, m.store, store.KeyToken)
	if err != nil {
		m.logger.Warn("reading stored token", "error", err)
		return
	}
	if stored == "" {
		return
	}

	resp, err := m.auth.Me(ctx)
	if err != nil {
		m.logger.Warn("stored session is no longer valid", "error", err)
		if err := m.store.Delete(ctx, store.KeyToken); err != nil {
			m.logger.Warn("deleting stored token", "error", err)
		}
		m.set(nil, "")
		return
	}
	m.set(resp.User, stored)
	m.logger.Debug("session restored", "user", userKey(resp.User))
}

// Login signs in and persists the token.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.logger.Warn("login failed", "error", err)
		switch {
		case api.StatusOf(err) == http.StatusUnauthorized:
			return Result{Error: MsgInvalidCredentials}
		case api.IsNetwork(err):
			return Result{Error: MsgUnreachable}
		default:
			return Result{Error: messageOr(err, MsgLoginFailed)}
		}
	}
	m.establish(ctx, resp)
	return Result{Success: true}
}

// Register creates an account, signs in, and persists the token.
func (m *Manager) Register(ctx context.Context, in api.RegisterInput) Result {
	resp, err := m.auth.Register(ctx, in)
	if err != nil {
		m.logger.Warn("register failed", "error", err)
		if api.IsNetwork(err) {
			return Result{Error: MsgUnreachable}
		}
		return Result{Error: messageOr(err, MsgRegisterFailed)}
	}
	m.establish(ctx, resp)
	return Result{Success: true}
}

func (m *Manager) establish(ctx context.Context, resp *api.AuthResponse) {
	if err := m.store.Set(ctx, store.KeyToken, resp.Token); err != nil {
		m.logger.Warn("persisting token", "error", err)
	}
	m.set(resp.User, resp.Token)
	m.logger.Info("signed in", "user", userKey(resp.User))
}

// Logout forgets the token and the user.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx, store.KeyToken); err != nil {
		m.logger.Warn("deleting stored token", "error", err)
	}
	m.set(nil, "")
}

func (m *Manager) set(user *api.User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.token = token
}

// State returns a copy of the session.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var user *api.User
	if m.user != nil {
		u := *m.user
		user = &u
	}
	return State{User: user, Token: m.token, Loading: m.loading}
}

// User returns the signed-in user, or nil.
func (m *Manager) User() *api.User {
	return m.State().User
}

// Token implements api.TokenSource with the in-memory token.
func (m *Manager) Token(ctx context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// IsManager reports whether the signed-in user has the manager role.
func (m *Manager) IsManager() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsManager()
}

// TokenExpiry returns the exp claim of the held token, if it has one.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return TokenExpiry(m.token)
}

func messageOr(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func userKey(u *api.User) string {
	if u == nil {
		return ""
	}
	return u.Key()
}
