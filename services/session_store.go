package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"hotel-storefront/logger"
	"hotel-storefront/models"
	"hotel-storefront/storage"
)

// AuthAPI is the slice of the hotel API the session lifecycle needs.
type AuthAPI interface {
	ObtainToken(ctx context.Context, creds models.Credentials) (models.TokenPair, error)
	RefreshToken(ctx context.Context, refresh string) (models.TokenPair, error)
	Register(ctx context.Context, reg models.Registration) error
}

// Outcome is the state a session operation left behind and where the page
// should navigate next. An empty Redirect means stay.
type Outcome struct {
	State    models.SessionState `json:"state"`
	Redirect string              `json:"redirect,omitempty"`
}

const (
	RedirectHome  = "/"
	RedirectLogin = "/login"
)

// errSessionEnded reports a token exchange that finished after the session
// it belonged to was logged out or expired.
var errSessionEnded = fmt.Errorf("session ended during token exchange: %w", models.ErrNotAuthenticated)

// SessionStore owns the authentication lifecycle. The identity is only ever
// derived from the current access token; both are replaced together.
type SessionStore struct {
	api      AuthAPI
	store    storage.Store
	notifier Notifier
	log      logger.Logger
	now      func() time.Time

	mu       sync.RWMutex
	state    models.SessionState
	tokens   models.TokenPair
	identity *models.Identity
	// gen advances whenever the session is cleared
	gen uint64

	refreshMu   sync.Mutex
	hydrateOnce sync.Once
	hydrated    chan struct{}
}

func NewSessionStore(api AuthAPI, store storage.Store, notifier Notifier, log logger.Logger) *SessionStore {
	if log == nil {
		log = logger.Discard()
	}
	return &SessionStore{
		api:      api,
		store:    store,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		state:    models.StateLoggingIn,
		hydrated: make(chan struct{}),
	}
}

// Hydrate reads the persisted token record once. Until it returns, Hydrated
// reports false. A record that does not decode is removed.
func (s *SessionStore) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		defer close(s.hydrated)
		s.Reload(ctx)
	})
}

func (s *SessionStore) Hydrated() bool {
	select {
	case <-s.hydrated:
		return true
	default:
		return false
	}
}

// WaitHydrated blocks until hydration finished or ctx is done.
func (s *SessionStore) WaitHydrated(ctx context.Context) error {
	select {
	case <-s.hydrated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload re-derives the session from durable storage.
func (s *SessionStore) Reload(ctx context.Context) models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, storage.TokenKey)
	if err != nil {
		if !errors.Is(err, models.ErrRecordNotFound) {
			s.log.Error("session: read token record: %v", err)
		}
		s.clearLocked()
		return s.state
	}

	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil || pair.Empty() {
		s.log.Warn("session: discarding unreadable token record: %v", err)
		s.dropRecordLocked(ctx)
		return s.state
	}
	id, err := DecodeIdentity(pair.Access)
	if err != nil {
		s.log.Warn("session: discarding token record: %v", err)
		s.dropRecordLocked(ctx)
		return s.state
	}

	s.setLocked(pair, id)
	return s.state
}

func (s *SessionStore) Login(ctx context.Context, creds models.Credentials) (Outcome, error) {
	s.mu.Lock()
	prev := s.state
	gen := s.gen
	s.state = models.StateLoggingIn
	s.mu.Unlock()

	pair, err := s.api.ObtainToken(ctx, creds)
	if err == nil {
		err = s.commit(ctx, pair, gen)
	}
	if err != nil {
		s.mu.Lock()
		if s.state == models.StateLoggingIn {
			s.state = prev
		}
		state := s.state
		s.mu.Unlock()

		s.log.Error("session: login %s: %v", creds.Email, err)
		notify(ctx, s.notifier, NotifyError, "Username or password does not exist")
		return Outcome{State: state}, err
	}

	s.log.Info("session: %s signed in", creds.Email)
	notify(ctx, s.notifier, NotifySuccess, "Login successful")
	return Outcome{State: models.StateAuthenticated, Redirect: RedirectHome}, nil
}

// commit decodes, persists and installs a fresh token pair, unless the session
// was cleared since gen was read.
func (s *SessionStore) commit(ctx context.Context, pair models.TokenPair, gen uint64) error {
	id, err := DecodeIdentity(pair.Access)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode token record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return errSessionEnded
	}
	if err := s.store.Set(ctx, storage.TokenKey, raw); err != nil {
		return fmt.Errorf("persist token record: %w", err)
	}
	s.setLocked(pair, id)
	return nil
}

func (s *SessionStore) Register(ctx context.Context, reg models.Registration) (Outcome, error) {
	state := s.State()
	if reg.Password != reg.PasswordConfirmation {
		notify(ctx, s.notifier, NotifyError, "Passwords do not match")
		return Outcome{State: state}, fmt.Errorf("password confirmation mismatch: %w", models.ErrValidation)
	}

	if err := s.api.Register(ctx, reg); err != nil {
		s.log.Error("session: register %s: %v", reg.Email, err)
		notify(ctx, s.notifier, NotifyError, registerFailureTitle(err))
		return Outcome{State: state}, err
	}

	s.log.Info("session: registered %s", reg.Email)
	notify(ctx, s.notifier, NotifySuccess, "Registration successful, login now")
	return Outcome{State: state, Redirect: RedirectLogin}, nil
}

func registerFailureTitle(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("An error occurred %d", se.Status)
	}
	return "An error occurred"
}

func (s *SessionStore) Logout(ctx context.Context) Outcome {
	s.mu.Lock()
	s.dropRecordLocked(ctx)
	s.mu.Unlock()

	s.log.Info("session: signed out")
	notify(ctx, s.notifier, NotifySuccess, "You have been logged out")
	return Outcome{State: models.StateAnonymous, Redirect: RedirectLogin}
}

func (s *SessionStore) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the decoded claims of the current access token.
func (s *SessionStore) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

func (s *SessionStore) Tokens() (models.TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, !s.tokens.Empty()
}

// AccessToken returns a usable bearer token, refreshing an expired one once.
// A refresh the API rejects ends the session.
func (s *SessionStore) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	tokens, id := s.tokens, s.identity
	s.mu.RUnlock()

	if id == nil || tokens.Empty() {
		return "", models.ErrNotAuthenticated
	}
	if !id.Expired(s.now()) {
		return tokens.Access, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// another caller may have refreshed while we waited
	s.mu.RLock()
	tokens, id = s.tokens, s.identity
	gen := s.gen
	s.mu.RUnlock()
	if id == nil {
		return "", models.ErrNotAuthenticated
	}
	if !id.Expired(s.now()) {
		return tokens.Access, nil
	}
	if tokens.Refresh == "" {
		s.expire(ctx, "no refresh token")
		return "", models.ErrNotAuthenticated
	}

	pair, err := s.api.RefreshToken(ctx, tokens.Refresh)
	if err == nil {
		err = s.commit(ctx, pair, gen)
	}
	if errors.Is(err, errSessionEnded) {
		return "", err
	}
	if err != nil {
		s.expire(ctx, err.Error())
		return "", fmt.Errorf("refresh access token: %w", models.ErrNotAuthenticated)
	}
	s.log.Debug("session: access token refreshed")
	return pair.Access, nil
}

func (s *SessionStore) expire(ctx context.Context, reason string) {
	s.log.Warn("session: expired: %s", reason)
	s.mu.Lock()
	s.dropRecordLocked(ctx)
	s.mu.Unlock()
	notify(ctx, s.notifier, NotifyError, "Your session has expired, please log in again")
}

func (s *SessionStore) setLocked(pair models.TokenPair, id models.Identity) {
	s.tokens = pair
	s.identity = &id
	s.state = models.StateAuthenticated
}

func (s *SessionStore) clearLocked() {
	s.tokens = models.TokenPair{}
	s.identity = nil
	s.state = models.StateAnonymous
	s.gen++
}

func (s *SessionStore) dropRecordLocked(ctx context.Context) {
	if err := s.store.Delete(ctx, storage.TokenKey); err != nil {
		s.log.Error("session: delete token record: %v", err)
	}
	s.clearLocked()
}
