package ctest

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/courier-qa/courier-contract-tests/framework"
)

const (
	excludedByFilter = "excluded by filter parameters"
	runCancelled     = "test run was cancelled"
)

type environment struct {
	ctx           context.Context
	results       framework.Results
	testLogger    framework.TestLogger
	filter        framework.Filter
	configuration interface{}
}

// T is the context of a single test or subtest.
type T struct {
	env          *environment
	id           framework.TestID
	debugLogger  framework.CapturingLogger
	failed       bool
	skipped      bool
	skipReason   string
	errors       []error
	warnings     []string
	cleanups     []func()
	cleanupOwner *T
	finished     bool
}

// Run executes a tree of tests and returns the results of every subtest that was started.
//
// The configuration value is made available to every test through T.Context. The ctx
// parameter is used for the requests that tests make; once it is cancelled, subtests that
// have not started yet are reported as skipped.
func Run(
	ctx context.Context,
	filter framework.Filter,
	testLogger framework.TestLogger,
	configuration interface{},
	action func(*T),
) framework.Results {
	if testLogger == nil {
		testLogger = framework.NullTestLogger()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	env := &environment{
		ctx:           ctx,
		filter:        filter,
		testLogger:    testLogger,
		configuration: configuration,
	}
	t := &T{env: env}
	result := t.run(action)
	if !result.Passed() || len(result.Warnings) > 0 {
		// only happens if the top-level action itself failed outside of any subtest
		env.results.Tests = append(env.results.Tests, result)
		if len(result.Errors) > 0 {
			env.results.Failures = append(env.results.Failures, result)
		}
	}
	return env.results
}

func (t *T) run(action func(*T)) (result framework.TestResult) {
	defer func() {
		if r := recover(); r != nil {
			t.recovered(r)
		}
		t.runCleanups()
		t.finished = true
		result = framework.TestResult{
			TestID:     t.id,
			Errors:     t.errors,
			Warnings:   t.warnings,
			Skipped:    t.skipped,
			SkipReason: t.skipReason,
		}
	}()

	action(t)
	return
}

func (t *T) recovered(r interface{}) {
	if t.skipped {
		return
	}
	t.failed = true
	var addError error
	if _, ok := r.(*T); ok {
		if len(t.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	}
	if addError != nil {
		t.errors = append(t.errors, addError)
		t.env.testLogger.TestError(t.id, addError)
	}
}

func (t *T) runCleanups() {
	for len(t.cleanups) > 0 {
		last := len(t.cleanups) - 1
		cleanup := t.cleanups[last]
		t.cleanups = t.cleanups[:last]
		t.runCleanup(cleanup)
	}
}

func (t *T) runCleanup(cleanup func()) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*T); ok {
				return
			}
			t.Warn("cleanup panicked: %+v", r)
		}
	}()
	cleanup()
}

// ID returns the full path of the current test.
func (t *T) ID() framework.TestID {
	return t.id
}

// Run starts a subtest, waits for it to finish, and returns its result. A failure in the
// subtest does not make the current test fail.
func (t *T) Run(name string, action func(*T)) framework.TestResult {
	id := t.id.Plus(name)

	t.env.testLogger.TestStarted(id)
	if t.env.filter != nil && !t.env.filter(id) {
		t.env.testLogger.TestSkipped(id, excludedByFilter)
		return framework.TestResult{TestID: id, Skipped: true, SkipReason: excludedByFilter}
	}
	if t.env.ctx.Err() != nil {
		t.env.testLogger.TestSkipped(id, runCancelled)
		result := framework.TestResult{TestID: id, Skipped: true, SkipReason: runCancelled}
		t.env.results.Tests = append(t.env.results.Tests, result)
		return result
	}
	child := &T{id: id, env: t.env}
	result := child.run(action)

	t.env.results.Tests = append(t.env.results.Tests, result)
	if child.skipped {
		t.env.testLogger.TestSkipped(id, child.skipReason)
	} else {
		if child.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		}
		t.env.testLogger.TestFinished(id, child.failed, child.debugLogger.Output())
	}
	return result
}

// Errorf records a failure and lets the test continue.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.env.testLogger.TestError(t.id, err)
}

// FailNow stops the current test immediately. Deferred cleanups still run.
func (t *T) FailNow() {
	panic(t)
}

// Fatalf is a shortcut for Errorf followed by FailNow.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	t.FailNow()
}

// Skip stops the current test and reports it as skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Failed reports whether the test has recorded any failure so far.
func (t *T) Failed() bool {
	return t.failed
}

// Warn records a problem that should appear in the report without failing the test.
//
// A step of Sequence that has already ended passes its warnings on to the sequence, since
// that is where its deferred cleanups run.
func (t *T) Warn(format string, args ...interface{}) {
	if t.finished && t.cleanupOwner != nil {
		t.cleanupOwner.Warn(format, args...)
		return
	}
	message := fmt.Sprintf(format, args...)
	t.warnings = append(t.warnings, message)
	t.debugLogger.Printf("WARNING: %s", message)
	t.env.testLogger.TestWarning(t.id, message)
}

// Defer schedules a function to run when the test ends, whether it passed, failed, called
// FailNow, or panicked. Deferred functions run in last-in-first-out order, and a panic in one
// of them is recorded as a warning without preventing the others from running.
//
// Inside a step of Sequence, the function is deferred until the whole sequence ends.
func (t *T) Defer(cleanup func()) {
	owner := t
	if t.cleanupOwner != nil {
		owner = t.cleanupOwner
	}
	owner.cleanups = append(owner.cleanups, cleanup)
}

func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to this test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Context returns the configuration value that was passed to Run.
func (t *T) Context() interface{} {
	return t.env.configuration
}

// RequestContext returns the context that requests made by the test should use.
func (t *T) RequestContext() context.Context {
	return t.env.ctx
}
