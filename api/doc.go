// Package api is the typed REST client for the admin console backend.
//
// Every endpoint answers a {success, message?, data} envelope; list
// endpoints nest a pagination block inside data. The client attaches the
// bearer token from its TokenSource to every request and invokes the
// unauthorized hook whenever a non-auth endpoint answers 401, which the
// session store wires to a forced logout. Auth endpoints are exempt so a
// rejected login surfaces as its own error.
//
// # Architecture boundaries
//
// This package owns transport concerns only: request construction, the
// envelope contract, and status-to-error mapping. It must not import the
// root goSession package; the store maps this package's errors onto its
// own taxonomy.
package api
