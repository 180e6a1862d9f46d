// Package session carries the state a form renders from the previous
// request: the validation ErrorBag and the success/error flash slots. Store
// keeps that state in an scs session (memory or Redis backed) and pops it
// once per request through Middleware; Snapshot is the in-memory Reader used
// inside a request and in tests.
package session
