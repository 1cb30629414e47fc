package framework

import (
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of one test or subtest.
//
// A test passes if it has no errors. Warnings are recorded for problems that must be visible in
// the report but do not make the test fail, such as a fixture that could not be deleted.
type TestResult struct {
	TestID     TestID
	Errors     []error
	Warnings   []string
	Skipped    bool
	SkipReason string
}

func (r TestResult) Passed() bool {
	return !r.Skipped && len(r.Errors) == 0
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// WithWarnings returns all non-skipped tests that recorded at least one warning.
func (r Results) WithWarnings() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if len(t.Warnings) > 0 {
			ret = append(ret, t)
		}
	}
	return ret
}

// Count returns the number of tests that passed, failed, and were skipped.
func (r Results) Count() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Skipped:
			skipped++
		case len(t.Errors) > 0:
			failed++
		default:
			passed++
		}
	}
	return
}

type TestID struct {
	Path []string
}

func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
