// Package session holds the authenticated state every remote operation
// depends on: the bearer token, the account behind it, and the teardown
// that a 401 from anywhere triggers.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

// Manager owns the session lifecycle. It is safe for concurrent use;
// the REST client reads the token while commands mutate the session.
type Manager struct {
	mu        sync.RWMutex
	token     string
	user      *entity.User
	listeners []func(authenticated bool)

	tokenPath string
	accounts  repository.AccountRepository
	log       *logrus.Logger
	clock     func() time.Time
}

// NewManager restores any persisted token from tokenPath. A missing or
// unreadable file simply starts the session logged out.
func NewManager(tokenPath string, accounts repository.AccountRepository, log *logrus.Logger) *Manager {
	m := &Manager{
		tokenPath: tokenPath,
		accounts:  accounts,
		log:       log,
		clock:     time.Now,
	}
	m.restore()
	return m
}

type tokenFile struct {
	AccessToken string `json:"access_token"`
}

func (m *Manager) restore() {
	raw, err := os.ReadFile(m.tokenPath)
	if err != nil {
		return
	}
	var tf tokenFile
	if err := json.Unmarshal(raw, &tf); err != nil || tf.AccessToken == "" {
		return
	}
	if expiry, ok := peekExpiry(tf.AccessToken); ok && !m.clock().Before(expiry) {
		m.log.Debug("persisted token already expired; discarding")
		os.Remove(m.tokenPath)
		return
	}
	m.token = tf.AccessToken
}

// Login exchanges credentials for a token, persists it, and loads the
// profile behind it.
func (m *Manager) Login(ctx context.Context, username, password string) (*entity.User, error) {
	token, err := m.accounts.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	user, err := m.accounts.Profile(ctx)
	if err != nil {
		m.Invalidate()
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	if err := m.persist(token); err != nil {
		m.log.WithError(err).Warn("session token not persisted; login valid for this run only")
	}
	m.notify(true)
	m.log.WithField("username", user.Username).Info("logged in")
	return user, nil
}

func (m *Manager) persist(token string) error {
	if m.tokenPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.tokenPath), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	raw, err := json.Marshal(tokenFile{AccessToken: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.tokenPath, raw, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Logout is the user-driven counterpart of Invalidate.
func (m *Manager) Logout() {
	m.Invalidate()
	m.log.Info("logged out")
}

// Invalidate tears the session down: token and profile dropped, the
// persisted token removed, listeners told. The REST client calls this on
// any 401, from any endpoint.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	hadToken := m.token != ""
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if m.tokenPath != "" {
		os.Remove(m.tokenPath)
	}
	if hadToken {
		m.notify(false)
	}
}

// Token returns the current bearer token, or "" when logged out. The
// REST client uses it as its token source.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Authenticated reports whether an unexpired token is held. It never
// touches the network; the server stays the authority and may still
// answer 401.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return false
	}
	if expiry, ok := peekExpiry(token); ok && !m.clock().Before(expiry) {
		return false
	}
	return true
}

// Require returns entity.ErrUnauthenticated when no usable session is
// held. Gated commands call it before doing anything else.
func (m *Manager) Require() error {
	if !m.Authenticated() {
		return entity.ErrUnauthenticated
	}
	return nil
}

// IsAdmin reports whether the cached profile carries the admin role.
// It never fetches; callers needing fresh state go through User first.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsAdmin()
}

// User returns the cached profile, fetching it on first use.
func (m *Manager) User(ctx context.Context) (*entity.User, error) {
	m.mu.RLock()
	cached := m.user
	m.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	if err := m.Require(); err != nil {
		return nil, err
	}

	user, err := m.accounts.Profile(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return user, nil
}

// Subscribe registers a listener for session transitions. Listeners run
// synchronously on login and teardown.
func (m *Manager) Subscribe(fn func(authenticated bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(authenticated bool) {
	m.mu.RLock()
	listeners := append([]func(bool){}, m.listeners...)
	m.mu.RUnlock()
	for _, fn := range listeners {
		fn(authenticated)
	}
}

// peekExpiry reads the exp claim without verifying the signature; only
// the server can verify, this is just to avoid sending a token that is
// certainly dead.
func peekExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
