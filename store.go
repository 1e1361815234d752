package goSession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrEthical07/goSession/api"
	"github.com/MrEthical07/goSession/storage"
)

// Logout reasons recorded in audit events and exposed to sinks.
const (
	// LogoutUserInitiated is an exported constant or variable used by the session store.
	LogoutUserInitiated = "user_initiated"
	// LogoutSessionExpired is an exported constant or variable used by the session store.
	LogoutSessionExpired = "session_expired_periodic_check"
	// LogoutUnauthorized is an exported constant or variable used by the session store.
	LogoutUnauthorized = "unauthorized_response"
)

type authAPI interface {
	Login(ctx context.Context, username, password string) (*api.LoginData, error)
	Refresh(ctx context.Context, userID string) (string, error)
}

// Store defines a public type used by goSession APIs.
//
// Store owns the in-memory session state, mirrors it into its storage
// backend, and runs the periodic validity check. All methods are safe for
// concurrent use.
type Store struct {
	config  Config
	storage storage.Store
	api     authAPI
	client  *api.Client
	metrics *Metrics
	audit   *auditDispatcher

	mu           sync.Mutex
	user         *UserInfo
	token        string
	loading      bool
	lastActivity time.Time
	authSeq      uint64
	checkDone    chan struct{}
	trackers     []*ActivityTracker
	closed       bool
}

// API exposes the REST client the store was built with. It is nil when the
// store was assembled with a custom transport instead of [api.Client].
func (s *Store) API() *api.Client {
	if s == nil {
		return nil
	}
	return s.client
}

// Snapshot returns a point-in-time copy of the session state. Authenticated
// is derived, never stored: it holds only while a shape-valid token and a
// user record are both present.
func (s *Store) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Token:        s.token,
		Loading:      s.loading,
		LastActivity: s.lastActivity,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	snap.Authenticated = s.token != "" && s.tokenValid(s.token) && s.user != nil

	return snap
}

// Hydrate restores persisted session state. It never calls the network and
// never fails the caller: corrupt or half-present state clears both keys and
// the store comes up signed out. Loading is false once Hydrate returns.
func (s *Store) Hydrate(ctx context.Context) {
	if s == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	token, tokenErr := s.storage.Get(ctx, storage.KeyToken)
	rawUser, userErr := s.storage.Get(ctx, storage.KeyUser)

	tokenMissing := errors.Is(tokenErr, storage.ErrNotFound)
	userMissing := errors.Is(userErr, storage.ErrNotFound)

	switch {
	case tokenErr != nil && !tokenMissing,
		userErr != nil && !userMissing:
		// Backend unreachable. Come up signed out without clearing keys.
		s.finishHydrate(nil, "")
		s.metricInc(MetricHydrateEmpty)
		return

	case tokenMissing && userMissing:
		s.finishHydrate(nil, "")
		s.metricInc(MetricHydrateEmpty)
		return

	case tokenMissing || userMissing:
		// One key without the other is a divergent record.
		s.clearPersisted(ctx)
		s.finishHydrate(nil, "")
		s.metricInc(MetricHydrateCorrupt)
		s.emitAudit(ctx, auditEventHydrateCorruptState, false, "", "", "", ErrCorruptState, func() map[string]string {
			return map[string]string{"cause": "divergent_keys"}
		})
		return
	}

	var user UserInfo
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || !TokenShapeValid(token) {
		s.clearPersisted(ctx)
		s.finishHydrate(nil, "")
		s.metricInc(MetricHydrateCorrupt)
		s.emitAudit(ctx, auditEventHydrateCorruptState, false, "", "", "", ErrCorruptState, func() map[string]string {
			if err != nil {
				return map[string]string{"cause": "unparsable_user"}
			}
			return map[string]string{"cause": "malformed_token"}
		})
		return
	}

	s.finishHydrate(&user, token)
	s.metricInc(MetricHydrateRestored)
}

func (s *Store) finishHydrate(user *UserInfo, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.token = token
	s.loading = false
	if user != nil {
		s.lastActivity = time.Now()
		s.armPeriodicCheckLocked()
	}
}

// Login authenticates against the backend and installs the resulting session.
// Failures of any kind leave the current state untouched.
func (s *Store) Login(ctx context.Context, creds Credentials) (*LoginData, error) {
	return s.LoginWithPassword(ctx, creds.Username, creds.Password)
}

// LoginWithPassword is [Store.Login] with unpacked credentials.
func (s *Store) LoginWithPassword(ctx context.Context, username, password string) (*LoginData, error) {
	if s == nil {
		return nil, ErrStoreNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if username == "" || password == "" {
		s.metricInc(MetricLoginFailure)
		s.emitAudit(ctx, auditEventLoginFailure, false, "", username, "", ErrMissingCredentials, nil)
		return nil, ErrMissingCredentials
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreNotReady
	}
	if s.loading {
		s.mu.Unlock()
		return nil, ErrLoginInProgress
	}
	s.loading = true
	seq := s.authSeq
	s.mu.Unlock()

	start := time.Now()
	data, err := s.api.Login(ctx, username, password)
	s.metricObserve(MetricLoginLatency, time.Since(start))

	if err != nil {
		mapped := mapLoginError(err)

		s.mu.Lock()
		if s.authSeq == seq {
			s.loading = false
		}
		s.mu.Unlock()

		s.recordLoginFailure(ctx, username, mapped)
		return nil, mapped
	}

	user := &UserInfo{
		ID:          data.UserID,
		Username:    data.Username,
		AccessLevel: data.AccessLevel,
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		s.mu.Lock()
		if s.authSeq == seq {
			s.loading = false
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	s.mu.Lock()
	if s.authSeq != seq {
		// A logout landed while the request was in flight.
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: session was reset during login", ErrLoginFailed)
	}

	// Persist before the in-memory switch so a crash between the two never
	// leaves memory ahead of storage.
	persistErr := s.storage.Set(ctx, storage.KeyToken, data.Token)
	if persistErr == nil {
		persistErr = s.storage.Set(ctx, storage.KeyUser, string(rawUser))
	}
	if persistErr != nil {
		// Undo a partial write; memory was never switched.
		s.clearPersisted(ctx)
		s.loading = false
		s.mu.Unlock()

		mapped := fmt.Errorf("%w: persisting session: %v", ErrLoginFailed, persistErr)
		s.recordLoginFailure(ctx, username, mapped)
		return nil, mapped
	}

	s.user = user
	s.token = data.Token
	s.loading = false
	s.lastActivity = time.Now()
	s.armPeriodicCheckLocked()
	s.mu.Unlock()

	s.metricInc(MetricLoginSuccess)
	s.emitAudit(ctx, auditEventLoginSuccess, true, user.ID, user.Username, "", nil, func() map[string]string {
		return map[string]string{"access_level": user.AccessLevel}
	})

	return data, nil
}

func (s *Store) recordLoginFailure(ctx context.Context, username string, mapped error) {
	switch {
	case errors.Is(mapped, ErrRateLimited):
		s.metricInc(MetricLoginRateLimited)
		s.emitAudit(ctx, auditEventLoginRateLimited, false, "", username, "", mapped, nil)
	case errors.Is(mapped, ErrNetworkUnavailable):
		s.metricInc(MetricLoginNetworkError)
		s.emitAudit(ctx, auditEventLoginFailure, false, "", username, "", mapped, nil)
	case errors.Is(mapped, ErrMalformedResponse):
		s.metricInc(MetricLoginMalformed)
		s.emitAudit(ctx, auditEventLoginFailure, false, "", username, "", mapped, nil)
	default:
		s.metricInc(MetricLoginFailure)
		s.emitAudit(ctx, auditEventLoginFailure, false, "", username, "", mapped, nil)
	}
}

func mapLoginError(err error) error {
	var statusErr *api.StatusError
	switch {
	case errors.As(err, &statusErr):
		switch statusErr.StatusCode {
		case 401:
			if statusErr.Message != "" {
				return fmt.Errorf("%w: %s", ErrInvalidCredentials, statusErr.Message)
			}
			return ErrInvalidCredentials
		case 429:
			return fmt.Errorf("%w: too many login attempts, please try again later", ErrRateLimited)
		default:
			if statusErr.Message != "" {
				return fmt.Errorf("%w: %s", ErrLoginFailed, statusErr.Message)
			}
			return fmt.Errorf("%w: unexpected status %d", ErrLoginFailed, statusErr.StatusCode)
		}
	case errors.Is(err, api.ErrNoResponse):
		return fmt.Errorf("%w: could not reach the server", ErrNetworkUnavailable)
	case errors.Is(err, api.ErrBadEnvelope):
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	default:
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
}

// RefreshToken asks the backend for a fresh token for the current user and
// swaps it in. The user record is untouched. A refresh failure is reported
// but never signs the session out.
func (s *Store) RefreshToken(ctx context.Context) error {
	if s == nil {
		return ErrStoreNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreNotReady
	}
	if s.user == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no active session", ErrRefreshFailed)
	}
	userID := s.user.ID
	username := s.user.Username
	seq := s.authSeq
	s.mu.Unlock()

	token, err := s.api.Refresh(ctx, userID)
	if err != nil || !TokenShapeValid(token) {
		if err == nil {
			err = fmt.Errorf("%w: malformed replacement token", ErrMalformedResponse)
		}
		s.metricInc(MetricRefreshFailure)
		s.emitAudit(ctx, auditEventRefreshFailure, false, userID, username, "", fmt.Errorf("%w: %v", ErrRefreshFailed, err), nil)
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	s.mu.Lock()
	if s.authSeq != seq {
		s.mu.Unlock()
		return fmt.Errorf("%w: session was reset during refresh", ErrRefreshFailed)
	}
	// Storage keeps the previous token when the write fails, which still
	// mirrors the unchanged in-memory token.
	if perr := s.storage.Set(ctx, storage.KeyToken, token); perr != nil {
		s.mu.Unlock()
		wrapped := fmt.Errorf("%w: persisting token: %v", ErrRefreshFailed, perr)
		s.metricInc(MetricRefreshFailure)
		s.emitAudit(ctx, auditEventRefreshFailure, false, userID, username, "", wrapped, nil)
		return wrapped
	}
	s.token = token
	s.mu.Unlock()

	s.metricInc(MetricRefreshSuccess)
	s.emitAudit(ctx, auditEventRefreshSuccess, true, userID, username, "", nil, nil)

	return nil
}

// Logout clears the session. It is idempotent, never fails, and keeps the
// persisted theme. The reason is recorded for audit sinks; use the Logout*
// constants.
func (s *Store) Logout(reason string) {
	if s == nil {
		return
	}
	if reason == "" {
		reason = LogoutUserInitiated
	}
	ctx := context.Background()

	s.mu.Lock()
	hadSession := s.user != nil || s.token != ""
	userID := ""
	username := ""
	if s.user != nil {
		userID = s.user.ID
		username = s.user.Username
	}

	s.authSeq++
	s.user = nil
	s.token = ""
	s.loading = false
	s.disarmPeriodicCheckLocked()
	s.clearPersisted(ctx)
	s.mu.Unlock()

	if !hadSession {
		return
	}

	s.metricInc(MetricLogout)
	eventType := auditEventLogout
	switch reason {
	case LogoutSessionExpired:
		s.metricInc(MetricPeriodicLogout)
		eventType = auditEventSessionExpired
	case LogoutUnauthorized:
		s.metricInc(MetricUnauthorizedLogout)
		eventType = auditEventUnauthorizedResponse
	}
	s.emitAudit(ctx, eventType, true, userID, username, reason, nil, nil)
}

func (s *Store) clearPersisted(ctx context.Context) {
	_ = s.storage.Delete(ctx, storage.KeyToken)
	_ = s.storage.Delete(ctx, storage.KeyUser)
}

// Theme reads the persisted UI theme. Missing values default to [ThemeLight].
func (s *Store) Theme(ctx context.Context) string {
	if s == nil {
		return ThemeLight
	}
	if ctx == nil {
		ctx = context.Background()
	}

	value, err := s.storage.Get(ctx, storage.KeyTheme)
	if err != nil || (value != ThemeLight && value != ThemeDark) {
		return ThemeLight
	}
	return value
}

// SetTheme persists the UI theme. The theme survives logout.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if s == nil {
		return ErrStoreNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.storage.Set(ctx, storage.KeyTheme, theme)
}

// Close stops the periodic check, drains the audit dispatcher, and closes
// the storage backend. The store is unusable afterwards.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.disarmPeriodicCheckLocked()
	s.mu.Unlock()

	s.audit.Close()

	return s.storage.Close()
}

func (s *Store) armPeriodicCheckLocked() {
	if s.checkDone != nil || s.config.Session.CheckInterval <= 0 {
		return
	}
	done := make(chan struct{})
	s.checkDone = done
	go s.runPeriodicCheck(done)
}

func (s *Store) disarmPeriodicCheckLocked() {
	if s.checkDone == nil {
		return
	}
	close(s.checkDone)
	s.checkDone = nil
}

func (s *Store) runPeriodicCheck(done <-chan struct{}) {
	ticker := time.NewTicker(s.config.Session.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			token := s.token
			active := s.user != nil
			s.mu.Unlock()

			if active && !s.IsTokenValid(token) {
				s.Logout(LogoutSessionExpired)
				return
			}
		}
	}
}
