package goSession

import "context"

// Decision is the route-gate outcome for one protected view request.
// Exactly one decision applies per evaluation; there is no memory of
// prior denials.
type Decision uint8

const (
	// DecisionLoading means the session is still hydrating or a login is
	// in flight; render a placeholder, do not redirect.
	DecisionLoading Decision = iota
	// DecisionRender means the actor is authenticated and the view's
	// allow-list contains their access level.
	DecisionRender
	// DecisionRedirectLogin means no authenticated session exists; send
	// the actor to the login view, remembering the requested location.
	DecisionRedirectLogin
	// DecisionRedirectLanding means the actor is authenticated but the
	// allow-list does not admit their access level; send them to the
	// default landing view, never back to login.
	DecisionRedirectLanding
)

// String describes the decision for logs and audit metadata.
func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRender:
		return "render"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectLanding:
		return "redirect_landing"
	default:
		return "unknown"
	}
}

// Evaluate is the pure route-gate decision over a session snapshot and a
// view's allow-list. Role comparison is exact string membership; an empty
// allow-list admits nobody. Never panics and never errors: every input
// maps to one of the four decisions.
func Evaluate(snap Snapshot, allowedRoles []string) Decision {
	if snap.Loading {
		return DecisionLoading
	}
	if !snap.Authenticated || snap.User == nil {
		return DecisionRedirectLogin
	}

	for _, role := range allowedRoles {
		if snap.User.AccessLevel == role {
			return DecisionRender
		}
	}

	return DecisionRedirectLanding
}

// LoginPath is the configured login view path for gate redirects.
func (s *Store) LoginPath() string {
	return s.config.Gate.LoginPath
}

// LandingPath is the configured default landing view path for gate redirects.
func (s *Store) LandingPath() string {
	return s.config.Gate.LandingPath
}

// Authorize evaluates the gate against the store's current snapshot and
// records the outcome in metrics and, for denials, the audit trail. The
// requested view path travels in ctx via [WithRequestOrigin].
func (s *Store) Authorize(ctx context.Context, allowedRoles ...string) Decision {
	snap := s.Snapshot()
	decision := Evaluate(snap, allowedRoles)

	switch decision {
	case DecisionLoading:
		s.metricInc(MetricGateLoading)
	case DecisionRender:
		s.metricInc(MetricGateRender)
	case DecisionRedirectLogin:
		s.metricInc(MetricGateLoginRedirect)
	case DecisionRedirectLanding:
		s.metricInc(MetricGateLandingRedirect)
		userID, username := "", ""
		if snap.User != nil {
			userID, username = snap.User.ID, snap.User.Username
		}
		s.emitAudit(ctx, auditEventGateDenied, false, userID, username, "", nil, func() map[string]string {
			return map[string]string{
				"origin":   requestOriginFromContext(ctx),
				"decision": decision.String(),
			}
		})
	}

	return decision
}
