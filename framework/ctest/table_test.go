package ctest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRunsEveryRowInOrder(t *testing.T) {
	rows := [][]string{{"BLACK"}, {"GREY"}, {"BLACK", "GREY"}, {}}
	var seen []string
	results, _ := runTests(func(t *T) {
		rowResults := Table(t, "order creation", rows,
			func(colors []string) string { return "[" + strings.Join(colors, " ") + "]" },
			func(t *T, colors []string) {
				seen = append(seen, strings.Join(colors, ","))
				if len(colors) == 1 && colors[0] == "GREY" {
					t.Errorf("grey is broken")
				}
				if len(colors) == 2 {
					panic("two colors")
				}
			})
		assert.Equal(t, []string{
			"order creation/[BLACK]",
			"order creation/[GREY]",
			"order creation/[BLACK GREY]",
			"order creation/[]",
		}, resultIDs(rowResults))
		assert.True(t, rowResults[0].Passed())
		assert.False(t, rowResults[1].Passed())
		assert.False(t, rowResults[2].Passed())
		assert.True(t, rowResults[3].Passed())
	})
	assert.Equal(t, []string{"BLACK", "GREY", "BLACK,GREY", ""}, seen)
	assert.Equal(t, []string{"order creation/[GREY]", "order creation/[BLACK GREY]"}, resultIDs(results.Failures))
}

func TestTableWithoutGroupName(t *testing.T) {
	results, _ := runTests(func(t *T) {
		Table(t, "", []int{1, 2}, func(n int) string { return strings.Repeat("x", n) }, func(*T, int) {})
	})
	assert.Equal(t, []string{"x", "xx"}, resultIDs(results.Tests))
}

func TestSequenceSkipsStepsAfterFailure(t *testing.T) {
	var ran []string
	step := func(name string, fail bool) Step {
		return Step{Name: name, Action: func(t *T) {
			ran = append(ran, name)
			if fail {
				t.Errorf("%s failed", name)
			}
		}}
	}
	results, logger := runTests(func(t *T) {
		stepResults := Sequence(t, "duplicate login",
			step("create", false),
			step("create again", true),
			step("verify", false),
		)
		require.Len(t, stepResults, 3)
		assert.True(t, stepResults[0].Passed())
		assert.False(t, stepResults[1].Passed())
		assert.True(t, stepResults[2].Skipped)
		assert.Equal(t, "previous step failed", stepResults[2].SkipReason)
	})
	assert.Equal(t, []string{"create", "create again"}, ran)
	assert.Equal(t, []string{"duplicate login/create again"}, resultIDs(results.Failures))
	assert.Contains(t, logger.events, loggedEvent{"skipped", "duplicate login/verify", "previous step failed"})
}

func TestSequenceDefersCleanupUntilAllStepsEnd(t *testing.T) {
	var events []string
	results, _ := runTests(func(t *T) {
		Sequence(t, "seq",
			Step{Name: "create", Action: func(t *T) {
				events = append(events, "create")
				t.Defer(func() {
					events = append(events, "cleanup")
					t.Warn("second delete returned 404")
				})
			}},
			Step{Name: "use", Action: func(t *T) { events = append(events, "use") }},
		)
	})
	assert.Equal(t, []string{"create", "use", "cleanup"}, events)

	warned := results.WithWarnings()
	require.Len(t, warned, 1)
	assert.Equal(t, "seq", warned[0].TestID.String())
	assert.True(t, results.OK())
}

func TestSequenceRunsCleanupEvenIfAStepFails(t *testing.T) {
	cleaned := false
	runTests(func(t *T) {
		Sequence(t, "seq",
			Step{Name: "create", Action: func(t *T) { t.Defer(func() { cleaned = true }) }},
			Step{Name: "fail", Action: func(t *T) { t.FailNow() }},
		)
	})
	assert.True(t, cleaned)
}
