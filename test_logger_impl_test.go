package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/courier-qa/courier-contract-tests/framework"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsoleTestLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{DebugOutputOnFailure: true, Output: &buf}
	id := framework.TestID{Path: []string{"courier login", "success"}}
	debug := framework.CapturedOutput{{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Message: "Request: curl"}}

	logger.TestStarted(id)
	logger.TestError(id, errors.New("unexpected status\n  FAILED:  status: expected 200, got 404"))
	logger.TestWarning(id, "cleanup failed")
	logger.TestFinished(id, true, debug)
	logger.TestSkipped(id, "excluded by filter parameters")

	assert.Equal(t, "[courier login/success]\n"+
		"  unexpected status\n"+
		"    FAILED:  status: expected 200, got 404\n"+
		"  WARNING: cleanup failed\n"+
		"  FAILED: courier login/success\n"+
		"    DEBUG [2024-01-02 03:04:05.000] Request: curl\n"+
		"  SKIPPED: courier login/success (excluded by filter parameters)\n",
		buf.String())
}

func TestConsoleTestLoggerHidesDebugOutputOfPassingTests(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{DebugOutputOnFailure: true, Output: &buf}
	logger.TestFinished(framework.TestID{Path: []string{"x"}}, false,
		framework.CapturedOutput{{Message: "hidden"}})
	assert.Empty(t, buf.String())
}
