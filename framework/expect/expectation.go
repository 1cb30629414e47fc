package expect

import (
	"fmt"
	"strings"
)

// Expectation describes an acceptable response: a status code and an ordered list of body
// checks. It is an immutable value; Body returns a new Expectation.
type Expectation struct {
	StatusCode int
	Checks     []BodyCheck
}

// BodyCheck applies a predicate to the value at a JSON path in the response body.
type BodyCheck struct {
	Path      string
	Predicate Predicate
}

func (c BodyCheck) String() string {
	return fmt.Sprintf("%s %s", c.Path, c.Predicate)
}

// Status starts an Expectation for the given status code.
func Status(statusCode int) Expectation {
	return Expectation{StatusCode: statusCode}
}

// Body returns a copy of the Expectation with one more body check.
func (e Expectation) Body(path string, predicate Predicate) Expectation {
	checks := make([]BodyCheck, 0, len(e.Checks)+1)
	checks = append(checks, e.Checks...)
	e.Checks = append(checks, BodyCheck{Path: path, Predicate: predicate})
	return e
}

func (e Expectation) String() string {
	parts := []string{fmt.Sprintf("status %d", e.StatusCode)}
	for _, c := range e.Checks {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}
