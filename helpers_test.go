package goSession

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/goSession/storage"
	"github.com/MrEthical07/goSession/storage/memory"
)

var testSigningKey = []byte("test-signing-key")

func testToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	if claims == nil {
		claims = jwt.MapClaims{}
	}
	if _, ok := claims["sub"]; !ok {
		claims["sub"] = "user-1"
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

// fakeBackend is a scriptable stand-in for the blog backend. Handlers
// consult the mode fields on every request, so tests can flip behavior
// between calls.
type fakeBackend struct {
	mu sync.Mutex

	loginStatus  int    // 0 means success
	loginBody    string // raw body override for the login response
	refreshMode  string // "nested" (default), "flat", "error", "garbage"
	loginCalls   int
	refreshCalls int
	nextToken    string
}

func (b *fakeBackend) setLoginFailure(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loginStatus = status
	b.loginBody = body
}

func (b *fakeBackend) setNextToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextToken = token
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.loginCalls++
		status, body, token := b.loginStatus, b.loginBody, b.nextToken
		b.mu.Unlock()

		if status != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
			return
		}

		if token == "" {
			token = testToken(t, nil)
		}
		writeTestJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]string{
				"token":       token,
				"_id":         "user-1",
				"username":    "alice",
				"accessLevel": "admin",
			},
		})
	})

	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.refreshCalls++
		mode, token := b.refreshMode, b.nextToken
		b.mu.Unlock()

		if token == "" {
			token = testToken(t, jwt.MapClaims{"refreshed": true})
		}

		switch mode {
		case "flat":
			writeTestJSON(w, http.StatusOK, map[string]string{"token": token})
		case "error":
			writeTestJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "refresh exploded",
			})
		case "garbage":
			writeTestJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{}})
		default:
			writeTestJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]string{"token": token},
			})
		}
	})

	mux.HandleFunc("GET /api/stats/posts/count", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "Not authorized",
		})
	})

	return mux
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type storeOption func(*Config, *Builder)

func withCheckInterval(d time.Duration) storeOption {
	return func(cfg *Config, _ *Builder) {
		cfg.Session.CheckInterval = d
	}
}

func withStrictExpiry() storeOption {
	return func(cfg *Config, _ *Builder) {
		cfg.Session.StrictExpiry = true
	}
}

func withSink(sink AuditSink) storeOption {
	return func(_ *Config, b *Builder) {
		b.WithAuditSink(sink)
	}
}

func withBackendStorage(store storage.Store) storeOption {
	return func(_ *Config, b *Builder) {
		b.WithStorage(store)
	}
}

// newTestStore builds a store wired to a fake backend. The returned cleanup
// closes both.
func newTestStore(t *testing.T, backend *fakeBackend, opts ...storeOption) (*Store, func()) {
	t.Helper()

	server := httptest.NewServer(backend.handler(t))

	cfg := DefaultConfig()
	cfg.API.BaseURL = server.URL + "/api"
	cfg.Session.CheckInterval = time.Hour

	builder := New().WithStorage(memory.New())
	for _, opt := range opts {
		opt(&cfg, builder)
	}
	builder.WithConfig(cfg)

	store, err := builder.Build()
	if err != nil {
		server.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return store, func() {
		_ = store.Close()
		server.Close()
	}
}

// seedPersisted writes a session directly into a storage backend, the way
// a prior process run would have left it.
func seedPersisted(t *testing.T, backend storage.Store, token string, user *UserInfo) {
	t.Helper()

	ctx := context.Background()
	if token != "" {
		if err := backend.Set(ctx, storage.KeyToken, token); err != nil {
			t.Fatalf("seed token: %v", err)
		}
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			t.Fatalf("marshal user: %v", err)
		}
		if err := backend.Set(ctx, storage.KeyUser, string(raw)); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
}

type captureSink struct {
	mu     sync.Mutex
	events []AuditEvent
}

func (s *captureSink) Emit(_ context.Context, event AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *captureSink) byType(eventType string) []AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []AuditEvent
	for _, e := range s.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
