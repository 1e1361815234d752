package goSession

import "errors"

var (
	// ErrMissingCredentials is returned by Login before any network call
	// when the normalized username or password is empty.
	ErrMissingCredentials = errors.New("please provide both username and password")
	// ErrMalformedResponse is returned when the backend reported failure
	// explicitly or returned a success envelope whose payload is unusable.
	ErrMalformedResponse = errors.New("invalid server response structure")
	// ErrInvalidCredentials is returned when the login endpoint answers 401.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRateLimited is returned when the login endpoint answers 429.
	ErrRateLimited = errors.New("too many login attempts")
	// ErrNetworkUnavailable is returned when no HTTP response was received.
	ErrNetworkUnavailable = errors.New("network error")
	// ErrLoginFailed is returned for any other HTTP-level login failure.
	ErrLoginFailed = errors.New("login failed")
	// ErrRefreshFailed is returned when the refresh endpoint fails or its
	// response carries no usable token. Refresh failure never clears the
	// current session.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrCorruptState is returned internally when persisted token or user
	// state is unparseable at hydration time. Hydrate converts it into a
	// clean empty session rather than surfacing it to callers.
	ErrCorruptState = errors.New("corrupt persisted session state")
	// ErrLoginInProgress is returned when a second Login overlaps an
	// in-flight one. The loading flag doubles as the caller-side
	// re-entrancy guard; the store refuses rather than letting a stale
	// resolution overwrite newer state.
	ErrLoginInProgress = errors.New("login already in progress")
	// ErrStoreNotReady is returned when a Store method is called before
	// Builder.Build completed.
	ErrStoreNotReady = errors.New("session store not initialized")
	// ErrInvalidTheme is returned by SetTheme for values other than
	// "light" or "dark".
	ErrInvalidTheme = errors.New("invalid theme value")
)
