// Package middleware exposes HTTP middleware adapters for the route-gate
// decisions of a goSession.Store.
//
// # Guards
//
//   - [Guard] — full gate: loading placeholder, login redirect with return
//     location, landing redirect for disallowed roles.
//   - [RequireAuthenticated] — authentication only, no role allow-list.
//
// Each guard evaluates Store.Authorize against the current session snapshot
// and translates the decision into an HTTP response.
//
// # Architecture boundaries
//
// This package translates gate decisions into HTTP semantics. It does NOT
// implement session logic itself — all decisions are delegated to
// Store.Authorize.
//
// # What this package must NOT do
//
//   - Inspect or validate tokens directly (delegates to Store).
//   - Mutate session state (a denial never signs the actor out).
//   - Make authorization decisions beyond mapping the four gate outcomes.
package middleware
