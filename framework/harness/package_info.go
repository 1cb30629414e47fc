// Package harness is the HTTP client adapter through which every test talks to the service
// under test.
//
// Client.Send returns a Response for any HTTP status, including 4xx and 5xx; only failures to
// complete the round trip (connection refused, DNS errors, the per-call timeout, a broken body)
// are returned as errors, and those are always of type *TransportError. Tests decide for
// themselves whether a given status is a failure.
package harness
