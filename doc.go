// Package goSession provides the client-side session lifecycle for the
// portfolio admin console: persisted credential state, structural token
// validation, login/logout/refresh against the console's REST backend, a
// periodic liveness check, and role-based route authorization.
//
// The package is designed around a single current actor: one [Store] is
// created per application process through [Builder.Build], hydrated once
// from persisted storage, and mutated only by Login, Logout, RefreshToken,
// and the periodic validity check. Store methods are safe to call from
// multiple goroutines after initialization.
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Store], [Builder], [Config],
// the [Decision] gate outcomes, and value types (Snapshot, UserInfo,
// AuditEvent, MetricsSnapshot). Storage backends live under storage/, the
// REST client under api/, and HTTP adapters under middleware/. Downstream
// console pages read session state through [Store.Snapshot] and call
// Login/Logout; they must never write persisted storage directly.
//
// # What this package must NOT do
//
//   - Verify token signatures or decode claims on the default path.
//     IsTokenValid is a structural three-segment check only; the backend
//     is the authority on token semantics.
//   - Render, route, or style anything. The route gate returns a
//     [Decision]; adapting that decision to a transport belongs to
//     middleware/ and the embedding application.
//   - Perform network I/O outside Login and RefreshToken. Hydrate is
//     local-only by contract.
package goSession
