package goSession

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by goSession APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Gate    GateConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by goSession APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	// BaseURL is the backend root. Defaults to the local development
	// backend, matching the console's fallback.
	BaseURL string
	// RequestTimeout bounds each login/refresh round trip. The transport
	// default applies when zero.
	RequestTimeout time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goSession APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// CheckInterval is the period of the liveness re-validation while a
	// session is active.
	CheckInterval time.Duration
	// StrictExpiry additionally decodes the token's exp claim (without
	// signature verification) during validity checks. Off by default:
	// the backend is the authority on expiry, and a structurally valid
	// token is reported valid until the backend rejects it.
	StrictExpiry bool
}

/*
====================================
GATE CONFIG
====================================
*/

// GateConfig defines a public type used by goSession APIs.
//
// GateConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GateConfig struct {
	// LoginPath is the redirect target for unauthenticated requests.
	LoginPath string
	// LandingPath is the redirect target for authenticated requests whose
	// role is not in the view's allow-list.
	LandingPath string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goSession APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking emitters when the
	// buffer is saturated.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goSession APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration the console ships with.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5000/api",
			RequestTimeout: 15 * time.Second,
		},
		Session: SessionConfig{
			CheckInterval: 5 * time.Minute,
			StrictExpiry:  false,
		},
		Gate: GateConfig{
			LoginPath:   "/login",
			LandingPath: "/admin/dashboard",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when the configuration cannot produce a
// working store.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL must be set")
	}
	if c.API.RequestTimeout < 0 {
		return errors.New("API RequestTimeout must not be negative")
	}
	if c.Session.CheckInterval <= 0 {
		return errors.New("Session CheckInterval must be positive")
	}
	if !strings.HasPrefix(c.Gate.LoginPath, "/") {
		return errors.New("Gate LoginPath must be absolute")
	}
	if !strings.HasPrefix(c.Gate.LandingPath, "/") {
		return errors.New("Gate LandingPath must be absolute")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must not be negative")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	// Config holds no reference types today; a value copy is a deep copy.
	return cfg
}
