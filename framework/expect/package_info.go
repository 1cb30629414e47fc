// Package expect checks HTTP responses against declarative expectations: a status code plus an
// ordered list of (JSON path, predicate) pairs.
//
// Checking is pure; nothing here performs I/O or depends on a test context, so the same
// Expectation can be evaluated against any number of responses.
package expect
