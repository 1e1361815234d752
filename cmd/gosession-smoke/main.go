// Command gosession-smoke exercises the full session lifecycle against a
// backend: hydrate, login, gate checks, refresh, logout. With no -backend
// flag it spins up an in-process fake backend so the probe can run without
// any services.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/storage/memory"
)

func main() {
	var (
		backendURL = flag.String("backend", "", "backend base URL, e.g. http://localhost:5000/api; empty starts an in-process fake")
		username   = flag.String("username", "alice", "login username")
		password   = flag.String("password", "correct-horse", "login password")
		refreshes  = flag.Int("refreshes", 3, "number of token refreshes to run")
		timeout    = flag.Duration("timeout", 10*time.Second, "per-request timeout")
	)
	flag.Parse()

	if *refreshes < 0 {
		fmt.Fprintln(os.Stderr, "refreshes must be >= 0")
		os.Exit(2)
	}

	ctx := context.Background()

	base := *backendURL
	if base == "" {
		server := httptest.NewServer(fakeBackend(*username, *password))
		defer server.Close()
		base = server.URL + "/api"
		fmt.Println("using in-process fake backend at", base)
	}

	cfg := goSession.DefaultConfig()
	cfg.API.BaseURL = base
	cfg.API.RequestTimeout = *timeout

	store, err := goSession.New().
		WithConfig(cfg).
		WithStorage(memory.New()).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// ---------- hydrate ----------
	store.Hydrate(ctx)
	report("hydrate", store.Snapshot())

	if d := store.Authorize(ctx, goSession.AccessAdmin); d != goSession.DecisionRedirectLogin {
		fail("expected login redirect before login, got %v", d)
	}

	// ---------- login ----------
	start := time.Now()
	data, err := store.LoginWithPassword(ctx, *username, *password)
	if err != nil {
		fail("login: %v", err)
	}
	fmt.Printf("login ok in %v: user=%s level=%s\n", time.Since(start).Round(time.Millisecond), data.Username, data.AccessLevel)
	report("login", store.Snapshot())

	if d := store.Authorize(ctx, data.AccessLevel); d != goSession.DecisionRender {
		fail("expected render for own access level, got %v", d)
	}
	if d := store.Authorize(ctx); d != goSession.DecisionRedirectLanding {
		fail("expected landing redirect for empty allow-list, got %v", d)
	}

	// ---------- refresh ----------
	for i := 0; i < *refreshes; i++ {
		before := store.Snapshot().Token
		if err := store.RefreshToken(ctx); err != nil {
			fail("refresh %d: %v", i+1, err)
		}
		after := store.Snapshot().Token
		fmt.Printf("refresh %d ok (token changed: %t)\n", i+1, before != after)
	}

	// ---------- logout ----------
	store.Logout(goSession.LogoutUserInitiated)
	report("logout", store.Snapshot())
	if store.Snapshot().Authenticated {
		fail("still authenticated after logout")
	}

	snap := store.MetricsSnapshot()
	fmt.Printf("metrics: login_success=%d refresh_success=%d logout=%d\n",
		snap.Counters[goSession.MetricLoginSuccess],
		snap.Counters[goSession.MetricRefreshSuccess],
		snap.Counters[goSession.MetricLogout],
	)
	fmt.Println("smoke test passed")
}

func report(stage string, snap goSession.Snapshot) {
	user := "<none>"
	if snap.User != nil {
		user = snap.User.Username
	}
	fmt.Printf("%-8s authenticated=%-5t loading=%-5t user=%s\n", stage, snap.Authenticated, snap.Loading, user)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func fakeBackend(username, password string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body.Username != username || body.Password != password {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]string{
				"token":       fakeToken(),
				"_id":         "user-1",
				"username":    username,
				"accessLevel": "admin",
			},
		})
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]string{"token": fakeToken()},
		})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var tokenSerial int

func fakeToken() string {
	tokenSerial++
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := enc.EncodeToString([]byte(fmt.Sprintf(`{"sub":"user-1","serial":%d,"iat":%d}`, tokenSerial, time.Now().Unix())))
	return header + "." + claims + "." + enc.EncodeToString([]byte("sig"))
}
