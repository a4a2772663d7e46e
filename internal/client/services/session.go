package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eduroot/storefront/internal/client/client"
	"github.com/eduroot/storefront/internal/client/models"
	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/logging"
	"github.com/eduroot/storefront/internal/observe"
)

// SessionState is the lifecycle phase of a session.
type SessionState int

const (
	StateRestoring SessionState = iota
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session is an immutable snapshot of the session manager's state.
//
// User may be nil while State is StateAuthenticated: the backend is allowed
// to answer a login with a token only.
type Session struct {
	State    SessionState
	User     *models.User
	Language models.Language
	Loading  bool
}

// Authenticated reports whether a bearer token is held.
func (s Session) Authenticated() bool { return s.State == StateAuthenticated }

func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// SessionService owns the authenticated principal, the bearer token and the
// UI language preference.
type SessionService struct {
	api    client.API
	store  store.Store
	logger logging.Logger
	hub    *observe.Hub[Session]
	now    func() time.Time

	mu    sync.Mutex
	state Session
	// seq numbers principal-changing operations in start order. committed
	// is the seq of the last one that took effect; an operation can only
	// commit while no later-started one has.
	seq       uint64
	committed uint64
	// langRev is bumped on every explicit language change.
	langRev uint64
}

// NewSessionService returns a manager in the Restoring state. Call Restore
// once at startup to leave it.
func NewSessionService(api client.API, st store.Store, logger logging.Logger) *SessionService {
	return &SessionService{
		api:    api,
		store:  st,
		logger: logger.With("component", "session"),
		hub:    observe.NewHub[Session](),
		now:    time.Now,
		state: Session{
			State:    StateRestoring,
			Language: models.DefaultLanguage,
			Loading:  true,
		},
	}
}

// Snapshot returns a copy of the current state.
func (s *SessionService) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for every published snapshot.
func (s *SessionService) Subscribe(fn func(Session)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// begin starts a principal-changing operation and returns its sequence
// number. Starting an operation does not supersede anything; only a commit
// does.
func (s *SessionService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// commit applies fn to the state under the lock and publishes the result.
// fn runs only if no operation started after seq has committed; otherwise
// commit returns ErrSuperseded. Store writes inside fn happen under the lock
// so a stale operation can never overwrite a newer one's token.
func (s *SessionService) commit(seq uint64, fn func(st *Session) error) error {
	s.mu.Lock()
	if seq <= s.committed {
		s.mu.Unlock()
		return ErrSuperseded
	}
	next := s.state.clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	next.Loading = false
	s.committed = seq
	s.state = next
	snap := next.clone()
	s.mu.Unlock()

	s.hub.Publish(snap)
	return nil
}

// Restore rebuilds the session from the store at startup. It always ends
// with Loading false; failures leave the session anonymous and remove the
// stored token.
func (s *SessionService) Restore(ctx context.Context) error {
	seq := s.begin()

	langStored, langRev := s.restoreLanguage(ctx)

	token, ok, err := s.store.Get(ctx, store.KeyToken)
	if err != nil {
		s.logger.Error(ctx, "reading stored token failed", "error", err)
		s.finishAnonymous(ctx, seq, false)
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		s.finishAnonymous(ctx, seq, false)
		return nil
	}

	var user *models.User
	if tokenExpired(token, s.now()) {
		s.logger.Info(ctx, "stored token has expired, skipping identity check")
		err = client.ErrUnauthorized
	} else {
		user, err = s.api.Me(ctx)
		if err == nil && user == nil {
			err = client.ErrMalformedResponse
		}
	}

	if err != nil {
		s.logger.Warn(ctx, "restoring session failed, clearing token", "error", err)
		s.finishAnonymous(ctx, seq, true)
		return nil
	}

	err = s.commit(seq, func(st *Session) error {
		l, valid := models.ParseLanguage(string(user.Language))
		if valid && !langStored && langRev == s.langRev {
			if err := s.store.Set(ctx, store.KeyLanguage, l.String()); err != nil {
				s.logger.Warn(ctx, "persisting account language failed", "error", err)
			}
			st.Language = l
		}
		st.State = StateAuthenticated
		st.User = user
		return nil
	})
	if err != nil {
		s.logger.Debug(ctx, "dropping stale restore result")
		s.settle()
	}
	return nil
}

// restoreLanguage applies the stored language to the in-memory state
// without publishing. It reports whether a valid language was stored and
// the language revision it observed.
func (s *SessionService) restoreLanguage(ctx context.Context) (bool, uint64) {
	s.mu.Lock()
	rev := s.langRev
	s.mu.Unlock()

	lang, ok := s.storedLanguage(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if rev == s.langRev {
		s.state.Language = lang
	}
	return ok, rev
}

func (s *SessionService) storedLanguage(ctx context.Context) (models.Language, bool) {
	raw, ok, err := s.store.Get(ctx, store.KeyLanguage)
	if err != nil {
		s.logger.Warn(ctx, "reading stored language failed", "error", err)
		return models.DefaultLanguage, false
	}
	if !ok {
		return models.DefaultLanguage, false
	}
	lang, valid := models.ParseLanguage(raw)
	if !valid {
		s.logger.Warn(ctx, "ignoring unknown stored language", "language", raw)
		return models.DefaultLanguage, false
	}
	return lang, true
}

func (s *SessionService) finishAnonymous(ctx context.Context, seq uint64, dropToken bool) {
	err := s.commit(seq, func(st *Session) error {
		if dropToken {
			if err := s.store.Delete(ctx, store.KeyToken); err != nil {
				s.logger.Error(ctx, "deleting stored token failed", "error", err)
			}
		}
		st.State = StateAnonymous
		st.User = nil
		return nil
	})
	if err != nil {
		s.logger.Debug(ctx, "dropping stale restore result")
		s.settle()
	}
}

// settle makes sure a superseded restore never leaves the session
// restoring or loading.
func (s *SessionService) settle() {
	s.mu.Lock()
	if !s.state.Loading && s.state.State != StateRestoring {
		s.mu.Unlock()
		return
	}
	if s.state.State == StateRestoring {
		s.state.State = StateAnonymous
		s.state.User = nil
	}
	s.state.Loading = false
	snap := s.state.clone()
	s.mu.Unlock()

	s.hub.Publish(snap)
}

// Login authenticates with email and password.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	seq := s.begin()

	resp, err := s.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return s.authenticated(ctx, seq, "login", resp)
}

// Register creates an account and signs in with it. The current language
// is sent as the account's initial preference.
func (s *SessionService) Register(ctx context.Context, name, email, password string) error {
	seq := s.begin()

	lang := s.Snapshot().Language
	resp, err := s.api.Register(ctx, models.Registration{
		Name:     name,
		Email:    email,
		Password: password,
		Language: lang,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return s.authenticated(ctx, seq, "register", resp)
}

func (s *SessionService) authenticated(ctx context.Context, seq uint64, op string, resp *models.AuthResponse) error {
	token, legacy := resp.BearerToken()
	if token == "" {
		return fmt.Errorf("%s: %w", op, ErrMissingToken)
	}
	if legacy {
		s.logger.Warn(ctx, "backend sent access_token instead of token", "op", op)
	}
	if resp.User == nil {
		s.logger.Warn(ctx, "auth response has no user", "op", op)
	}

	err := s.commit(seq, func(st *Session) error {
		if err := s.store.Set(ctx, store.KeyToken, token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
		st.State = StateAuthenticated
		st.User = resp.User
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Info(ctx, "signed in", "op", op)
	return nil
}

// Logout forgets the token locally. The backend is not contacted.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.logout(ctx, s.begin())
}

func (s *SessionService) logout(ctx context.Context, seq uint64) error {
	var storeErr error
	err := s.commit(seq, func(st *Session) error {
		if err := s.store.Delete(ctx, store.KeyToken); err != nil {
			storeErr = fmt.Errorf("logout: delete token: %w", err)
		}
		st.State = StateAnonymous
		st.User = nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return storeErr
}

// Invalidate ends an authenticated session after the backend rejected its
// token. It is a no-op for anonymous sessions.
func (s *SessionService) Invalidate(ctx context.Context, reason string) {
	s.mu.Lock()
	if s.state.State != StateAuthenticated {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.logger.Warn(ctx, "session invalidated", "reason", reason)
	if err := s.logout(ctx, seq); err != nil {
		s.logger.Error(ctx, "invalidating session failed", "error", err)
	}
}

// ToggleLanguage switches between English and Hindi and persists the choice.
func (s *SessionService) ToggleLanguage(ctx context.Context) (models.Language, error) {
	return s.setLanguage(ctx, models.Language.Toggle)
}

// SetLanguage persists lang as the UI language.
func (s *SessionService) SetLanguage(ctx context.Context, lang models.Language) error {
	if _, ok := models.ParseLanguage(string(lang)); !ok {
		return fmt.Errorf("set language: unsupported language %q", lang)
	}
	_, err := s.setLanguage(ctx, func(models.Language) models.Language { return lang })
	return err
}

func (s *SessionService) setLanguage(ctx context.Context, next func(models.Language) models.Language) (models.Language, error) {
	s.mu.Lock()
	lang := next(s.state.Language)
	if err := s.store.Set(ctx, store.KeyLanguage, lang.String()); err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("set language: %w", err)
	}
	s.state.Language = lang
	s.langRev++
	snap := s.state.clone()
	s.mu.Unlock()

	s.hub.Publish(snap)
	return lang, nil
}

// Close drops all subscribers.
func (s *SessionService) Close() {
	s.hub.Close()
}
