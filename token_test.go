package goSession

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenShapeValid(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty", token: "", want: false},
		{name: "no dots", token: "abcdef", want: false},
		{name: "one dot", token: "abc.def", want: false},
		{name: "three dots", token: "a.b.c.d", want: false},
		{name: "empty header", token: ".b.c", want: false},
		{name: "empty payload", token: "a..c", want: false},
		{name: "empty signature", token: "a.b.", want: false},
		{name: "only dots", token: "..", want: false},
		{name: "minimal valid shape", token: "a.b.c", want: true},
		{name: "whitespace segments", token: " . . ", want: true},
		{name: "long garbage with two dots", token: strings.Repeat("x", 100) + ".y.z", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TokenShapeValid(tc.token); got != tc.want {
				t.Fatalf("TokenShapeValid(%q) = %t, want %t", tc.token, got, tc.want)
			}
		})
	}
}

func TestTokenShapeValidRealJWT(t *testing.T) {
	token := testToken(t, nil)
	if !TokenShapeValid(token) {
		t.Fatalf("signed JWT rejected by shape check: %q", token)
	}
}

func TestIsTokenValidDefaultIgnoresExpiry(t *testing.T) {
	store, cleanup := newTestStore(t, &fakeBackend{})
	defer cleanup()

	expired := testToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	if !store.IsTokenValid(expired) {
		t.Fatal("expired token rejected without StrictExpiry")
	}
}

func TestIsTokenValidStrictExpiry(t *testing.T) {
	store, cleanup := newTestStore(t, &fakeBackend{}, withStrictExpiry())
	defer cleanup()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expired",
			token: testToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}),
			want:  false,
		},
		{
			name:  "future exp",
			token: testToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
			want:  true,
		},
		{
			name:  "no exp claim",
			token: testToken(t, nil),
			want:  true,
		},
		{
			name: "undecodable payload",
			// Three segments but the payload is not base64 JSON.
			token: "a.b.c",
			want:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := store.IsTokenValid(tc.token); got != tc.want {
				t.Fatalf("IsTokenValid = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestIsTokenValidEmptyFallsBackToStoreToken(t *testing.T) {
	store, cleanup := newTestStore(t, &fakeBackend{})
	defer cleanup()

	if store.IsTokenValid("") {
		t.Fatal("empty store token reported valid")
	}
}

func TestTokenExpiredEdgeCases(t *testing.T) {
	now := time.Now()

	if !tokenExpired("not-a-jwt", now) {
		t.Fatal("undecodable token not treated as expired")
	}
	if tokenExpired(testToken(t, nil), now) {
		t.Fatal("token without exp treated as expired")
	}
	if !tokenExpired(testToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), now) {
		t.Fatal("past exp not treated as expired")
	}
}

func TestIsTokenValidNilStore(t *testing.T) {
	var store *Store
	if store.IsTokenValid("") {
		t.Fatal("nil store validated the empty token")
	}
	if store.IsTokenValid("a.b.c") {
		t.Fatal("nil store validated a token")
	}
}
