package goSession

import (
	"time"

	"github.com/MrEthical07/goSession/api"
)

// AccessLevel is the closed set of role tags the backend issues.
// Comparison is exact string membership everywhere in this package; no
// role implies another.
type AccessLevel = string

const (
	// AccessAdmin is the administrator role tag.
	AccessAdmin AccessLevel = "admin"
	// AccessEditor is the editor role tag.
	AccessEditor AccessLevel = "editor"
	// AccessUser is the basic user role tag.
	AccessUser AccessLevel = "user"
)

// UserInfo is the authenticated actor's profile as persisted alongside the
// token. It mirrors the backend's login payload fields.
type UserInfo struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	AccessLevel string `json:"accessLevel"`
	Email       string `json:"email,omitempty"`
}

// Credentials is the normalized login input. Login also accepts the two
// positional strings via [Store.LoginWithPassword]; both paths normalize
// to this record before validation.
type Credentials struct {
	Username string
	Password string
}

// LoginData is the payload the backend returns on a successful login.
type LoginData = api.LoginData

// Snapshot is a point-in-time copy of the session state. Gate decisions
// and downstream pages consume Snapshot values; mutating a Snapshot has no
// effect on the store.
type Snapshot struct {
	User          *UserInfo
	Token         string
	Loading       bool
	Authenticated bool
	LastActivity  time.Time
}

// Theme values persisted under the theme storage key.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
