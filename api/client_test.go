package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: server.URL + "/api"})
	return client, server
}

func TestLoginSuccess(t *testing.T) {
	var gotPath, gotRequestID string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"a.b.c","_id":"u1","username":"alice","accessLevel":"admin"}}`))
	}))
	defer server.Close()

	data, err := client.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if gotPath != "/api/auth/login" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotRequestID == "" {
		t.Fatal("no X-Request-ID header sent")
	}
	if data.Token != "a.b.c" || data.UserID != "u1" || data.Username != "alice" || data.AccessLevel != "admin" {
		t.Fatalf("data = %+v", data)
	}
}

func TestLoginRejectsIncompletePayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing token", body: `{"success":true,"data":{"_id":"u1","username":"alice","accessLevel":"admin"}}`},
		{name: "missing user id", body: `{"success":true,"data":{"token":"a.b.c","username":"alice","accessLevel":"admin"}}`},
		{name: "missing access level", body: `{"success":true,"data":{"token":"a.b.c","_id":"u1","username":"alice"}}`},
		{name: "success false", body: `{"success":false,"message":"nope"}`},
		{name: "no data", body: `{"success":true}`},
		{name: "not json", body: `<html>proxy error</html>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			if _, err := client.Login(context.Background(), "alice", "pw"); !errors.Is(err, ErrBadEnvelope) {
				t.Fatalf("err = %v, want ErrBadEnvelope", err)
			}
		})
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	_, err := client.Login(context.Background(), "alice", "pw")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized || statusErr.Message != "Invalid credentials" {
		t.Fatalf("status error = %+v", statusErr)
	}
}

func TestNoResponseError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // kill the backend before the call

	if _, err := client.Login(context.Background(), "alice", "pw"); !errors.Is(err, ErrNoResponse) {
		t.Fatalf("err = %v, want ErrNoResponse", err)
	}
}

func TestRefreshAcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "nested envelope", body: `{"success":true,"data":{"token":"x.y.z"}}`},
		{name: "flat legacy", body: `{"token":"x.y.z"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			token, err := client.Refresh(context.Background(), "u1")
			if err != nil {
				t.Fatalf("Refresh failed: %v", err)
			}
			if token != "x.y.z" {
				t.Fatalf("token = %q", token)
			}
		})
	}
}

func TestRefreshRejectsTokenlessBody(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	if _, err := client.Refresh(context.Background(), "u1"); !errors.Is(err, ErrBadEnvelope) {
		t.Fatalf("err = %v, want ErrBadEnvelope", err)
	}
}

func TestUnauthorizedHookSkipsAuthEndpoints(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"no"}`))
	}))
	defer server.Close()

	var fired atomic.Int64
	client.SetUnauthorizedHandler(func() {
		fired.Add(1)
	})

	ctx := context.Background()
	if _, err := client.Login(ctx, "alice", "pw"); err == nil {
		t.Fatal("expected login error")
	}
	if _, err := client.Refresh(ctx, "u1"); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := fired.Load(); got != 0 {
		t.Fatalf("hook fired %d times for auth endpoints, want 0", got)
	}

	if _, err := client.PostsCount(ctx); err == nil {
		t.Fatal("expected stats error")
	}
	if got := fired.Load(); got != 1 {
		t.Fatalf("hook fired %d times for protected endpoint, want 1", got)
	}
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":{"count":3}}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL + "/api",
		TokenSource: func(context.Context) string {
			return "a.b.c"
		},
	})

	count, err := client.PostsCount(context.Background())
	if err != nil {
		t.Fatalf("PostsCount failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if gotAuth != "Bearer a.b.c" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestNoTokenNoAuthorizationHeader(t *testing.T) {
	var sawHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"success":true,"data":{"count":0}}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL + "/api",
		TokenSource: func(context.Context) string {
			return ""
		},
	})

	if _, err := client.PostsCount(context.Background()); err != nil {
		t.Fatalf("PostsCount failed: %v", err)
	}
	if sawHeader {
		t.Fatal("Authorization header sent without a token")
	}
}

func TestListPostsQueryAndDecode(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "5" || q.Get("status") != "published" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"posts":[{"_id":"p1","title":"hello"}],"pagination":{"currentPage":2,"totalPages":4,"totalItems":17,"itemsPerPage":5}}}`))
	}))
	defer server.Close()

	list, err := client.ListPosts(context.Background(), 2, 5, PostFilters{Status: "published"})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(list.Posts) != 1 || list.Posts[0].ID != "p1" {
		t.Fatalf("posts = %+v", list.Posts)
	}
	if list.Pagination.TotalItems != 17 || list.Pagination.CurrentPage != 2 {
		t.Fatalf("pagination = %+v", list.Pagination)
	}
}
