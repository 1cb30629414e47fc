package expect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/courier-qa/courier-contract-tests/framework/harness"
)

const absent = "absent"

// Kind says which part of an Expectation a Failure is about.
type Kind int

const (
	// UnexpectedStatus means the status code did not match.
	UnexpectedStatus Kind = iota
	// BodyAssertionFailure means the status matched but at least one body check did not.
	BodyAssertionFailure
)

func (k Kind) String() string {
	if k == UnexpectedStatus {
		return "unexpected status"
	}
	return "body assertion failed"
}

// CheckResult is the outcome of one attempted check.
type CheckResult struct {
	Target   string // "status" or a JSON path
	Expected string
	Actual   string
	Passed   bool
}

// Failure is returned by Assert and AssertAll when a response does not meet an Expectation.
// It lists every check that was attempted, in order, and every check that was not.
type Failure struct {
	Kind         Kind
	Request      string
	Checks       []CheckResult
	NotAttempted []string
	Body         string
}

func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Kind.String())
	if f.Request != "" {
		b.WriteString(" for ")
		b.WriteString(f.Request)
	}
	for _, c := range f.Checks {
		if c.Passed {
			fmt.Fprintf(&b, "\n  ok:      %s %s", c.Target, c.Expected)
		} else {
			fmt.Fprintf(&b, "\n  FAILED:  %s: expected %s, got %s", c.Target, c.Expected, c.Actual)
		}
	}
	for _, n := range f.NotAttempted {
		fmt.Fprintf(&b, "\n  skipped: %s", n)
	}
	if f.Body != "" {
		fmt.Fprintf(&b, "\n  response body: %s", f.Body)
	}
	return b.String()
}

// Failed returns only the checks that did not pass.
func (f *Failure) Failed() []CheckResult {
	var ret []CheckResult
	for _, c := range f.Checks {
		if !c.Passed {
			ret = append(ret, c)
		}
	}
	return ret
}

// Assert checks a response in fail-fast mode. A status mismatch means no body checks are
// attempted, and the first failing body check stops evaluation.
func Assert(resp *harness.Response, e Expectation) error {
	return evaluate(resp, e, true)
}

// AssertAll checks a response without stopping at the first failure: the status and every
// body check are evaluated and reported together.
func AssertAll(resp *harness.Response, e Expectation) error {
	return evaluate(resp, e, false)
}

func evaluate(resp *harness.Response, e Expectation, failFast bool) error {
	f := &Failure{
		Kind:    UnexpectedStatus,
		Request: resp.Method + " " + resp.URL,
		Body:    strings.TrimSpace(string(resp.Body)),
	}
	failed := false

	statusOK := resp.StatusCode == e.StatusCode
	f.Checks = append(f.Checks, CheckResult{
		Target:   "status",
		Expected: strconv.Itoa(e.StatusCode),
		Actual:   strconv.Itoa(resp.StatusCode),
		Passed:   statusOK,
	})
	if !statusOK {
		failed = true
		if failFast {
			for _, c := range e.Checks {
				f.NotAttempted = append(f.NotAttempted, c.String())
			}
			return f
		}
	}

	for i, c := range e.Checks {
		result := checkBody(resp, c)
		f.Checks = append(f.Checks, result)
		if !result.Passed {
			failed = true
			if failFast {
				for _, rest := range e.Checks[i+1:] {
					f.NotAttempted = append(f.NotAttempted, rest.String())
				}
				break
			}
		}
	}
	if !failed {
		return nil
	}
	if statusOK {
		f.Kind = BodyAssertionFailure
	}
	return f
}

func checkBody(resp *harness.Response, c BodyCheck) CheckResult {
	result := CheckResult{Target: c.Path, Expected: c.Predicate.String()}
	if resp.JSONErr != nil {
		result.Actual = "body that is not valid JSON (" + resp.JSONErr.Error() + ")"
		return result
	}
	value, present, err := lookup(resp.Body, c.Path)
	switch {
	case c.Predicate.test == nil:
		result.Actual = "a check with no predicate"
	case err != nil:
		result.Actual = err.Error()
	case !present:
		result.Actual = absent
	default:
		result.Actual = value.JSONString()
		result.Passed = c.Predicate.test(value)
	}
	return result
}
