package ctest

import (
	"github.com/courier-qa/courier-contract-tests/framework"
)

// Step is one stage of a Sequence.
type Step struct {
	Name   string
	Action func(*T)
}

// Table runs the same action once per row, each as its own subtest named by nameOf. A row
// that fails, panics, or calls FailNow does not stop the rows after it. The results are
// returned in row order.
//
// If name is empty, the rows run directly under t; otherwise they are grouped under a subtest
// with that name.
func Table[R any](t *T, name string, rows []R, nameOf func(R) string, action func(*T, R)) []framework.TestResult {
	var results []framework.TestResult
	runRows := func(t *T) {
		for _, row := range rows {
			row := row
			results = append(results, t.Run(nameOf(row), func(t *T) { action(t, row) }))
		}
	}
	if name == "" {
		runRows(t)
	} else {
		t.Run(name, runRows)
	}
	return results
}

// Sequence runs dependent steps in order, each as its own subtest. As soon as one step does
// not pass, the remaining steps are reported as skipped without running.
//
// Cleanups that a step registers with Defer are run when the whole sequence ends rather than
// when the step ends, so that later steps can use what earlier steps created.
func Sequence(t *T, name string, steps ...Step) []framework.TestResult {
	var results []framework.TestResult
	runSteps := func(owner *T) {
		reason := ""
		for _, step := range steps {
			step := step
			var result framework.TestResult
			if reason != "" {
				skipReason := reason
				result = owner.Run(step.Name, func(t *T) { t.SkipWithReason(skipReason) })
			} else {
				result = owner.runOwned(step.Name, step.Action)
			}
			results = append(results, result)
			if reason == "" && !result.Passed() {
				if result.Skipped {
					reason = "previous step was skipped"
				} else {
					reason = "previous step failed"
				}
			}
		}
	}
	if name == "" {
		runSteps(t)
	} else {
		t.Run(name, runSteps)
	}
	return results
}

func (t *T) runOwned(name string, action func(*T)) framework.TestResult {
	owner := t
	if t.cleanupOwner != nil {
		owner = t.cleanupOwner
	}
	return t.Run(name, func(child *T) {
		child.cleanupOwner = owner
		action(child)
	})
}
