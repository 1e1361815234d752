package internaldefs

import (
	goSession "github.com/MrEthical07/goSession"
)

// CounterDef defines a public type used by goSession APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goSession APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session store.
var CounterDefs = []CounterDef{
	{ID: goSession.MetricLoginSuccess, Name: "gosession_login_success_total", Help: "Successful login attempts."},
	{ID: goSession.MetricLoginFailure, Name: "gosession_login_failure_total", Help: "Failed login attempts."},
	{ID: goSession.MetricLoginRateLimited, Name: "gosession_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: goSession.MetricLoginNetworkError, Name: "gosession_login_network_error_total", Help: "Login attempts that produced no server response."},
	{ID: goSession.MetricLoginMalformed, Name: "gosession_login_malformed_total", Help: "Login responses rejected for envelope violations."},
	{ID: goSession.MetricRefreshSuccess, Name: "gosession_refresh_success_total", Help: "Successful token refresh operations."},
	{ID: goSession.MetricRefreshFailure, Name: "gosession_refresh_failure_total", Help: "Failed token refresh operations."},
	{ID: goSession.MetricLogout, Name: "gosession_logout_total", Help: "Logout operations."},
	{ID: goSession.MetricHydrateRestored, Name: "gosession_hydrate_restored_total", Help: "Hydrations that restored a persisted session."},
	{ID: goSession.MetricHydrateEmpty, Name: "gosession_hydrate_empty_total", Help: "Hydrations that found no persisted session."},
	{ID: goSession.MetricHydrateCorrupt, Name: "gosession_hydrate_corrupt_total", Help: "Hydrations that cleared corrupt persisted state."},
	{ID: goSession.MetricPeriodicLogout, Name: "gosession_periodic_logout_total", Help: "Logouts forced by the periodic validity check."},
	{ID: goSession.MetricUnauthorizedLogout, Name: "gosession_unauthorized_logout_total", Help: "Logouts forced by 401 responses."},
	{ID: goSession.MetricGateRender, Name: "gosession_gate_render_total", Help: "Gate evaluations that admitted the request."},
	{ID: goSession.MetricGateLoading, Name: "gosession_gate_loading_total", Help: "Gate evaluations during session loading."},
	{ID: goSession.MetricGateLoginRedirect, Name: "gosession_gate_login_redirect_total", Help: "Gate evaluations redirected to login."},
	{ID: goSession.MetricGateLandingRedirect, Name: "gosession_gate_landing_redirect_total", Help: "Gate evaluations redirected to the landing view."},
}

// LoginLatency is the only histogram the store records; exporters address
// it directly instead of looping over a definition table.
var LoginLatency = HistogramDef{
	ID:   goSession.MetricLoginLatency,
	Name: "gosession_login_latency_seconds",
	Help: "Login latency histogram.",
}

// HistogramBounds is an exported constant or variable used by the session store.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session store.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice into the fixed
// 8-bucket layout shared by all exporters.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
