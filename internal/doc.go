// Package internal provides the core types and implementation for uniweb.
//
// This package is internal and should not be used directly. Import
// "github.com/bskqd/uniweb" instead, which re-exports the public API.
//
// # Pipeline
//
// App.Call acquires the request scope and runs the stages in order:
//
//   - buildRequest: RequestBuilder parses cookies, loads the session and
//     parses the query string and body
//   - matchRoute: exact path lookup across bound routers, first router wins
//   - matchMethod: 405 with Allow when the route does not accept the method
//   - authenticate: routes marked RequireAuth need a session identity
//   - inject: providers of the declared tokens are called
//   - handle: the route handler, wrapped in middleware
//
// A stage ends the request by setting a response or returning an error.
// Errors are translated once, in fail: ErrAuthentication to 302,
// ErrMalformedRequest to 400, anything else to 500. The response is then
// rendered and emitted, and the scope released.
//
// # Binding
//
// New snapshots each router when the app is built. Capability tokens are
// checked against the providers then, so a route asking for an unknown
// token panics at startup rather than failing per request.
package internal
