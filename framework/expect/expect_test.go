package expect

import (
	"encoding/json"
	"testing"

	"github.com/courier-qa/courier-contract-tests/framework/harness"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResponse(status int, body string) *harness.Response {
	r := &harness.Response{Method: "POST", URL: "http://service/courier", StatusCode: status, Body: []byte(body)}
	if body != "" {
		if err := json.Unmarshal([]byte(body), &r.JSON); err != nil {
			r.JSONErr = err
		}
	}
	return r
}

func requireFailure(t *testing.T, err error) *Failure {
	require.Error(t, err)
	var f *Failure
	require.ErrorAs(t, err, &f)
	return f
}

func TestAssertPasses(t *testing.T) {
	resp := makeResponse(201, `{"ok":true}`)
	assert.NoError(t, Assert(resp, Status(201).Body("ok", Equals(true))))
	assert.NoError(t, AssertAll(resp, Status(201).Body("ok", Equals(true))))
}

func TestStatusMismatchShortCircuitsInFailFastMode(t *testing.T) {
	resp := makeResponse(409, `{"message":"duplicate"}`)
	f := requireFailure(t, Assert(resp, Status(201).Body("ok", Equals(true)).Body("message", IsNotNull())))

	assert.Equal(t, UnexpectedStatus, f.Kind)
	require.Len(t, f.Checks, 1)
	assert.Equal(t, CheckResult{Target: "status", Expected: "201", Actual: "409"}, f.Checks[0])
	assert.Equal(t, []string{"ok equals true", "message is not null"}, f.NotAttempted)
}

func TestAssertAllReportsEveryCheckAfterStatusMismatch(t *testing.T) {
	resp := makeResponse(409, `{"message":"duplicate"}`)
	f := requireFailure(t, AssertAll(resp, Status(201).Body("ok", Equals(true)).Body("message", IsNotNull())))

	assert.Equal(t, UnexpectedStatus, f.Kind)
	require.Len(t, f.Checks, 3)
	assert.False(t, f.Checks[0].Passed)
	assert.Equal(t, CheckResult{Target: "ok", Expected: "equals true", Actual: "absent"}, f.Checks[1])
	assert.True(t, f.Checks[2].Passed)
	assert.Empty(t, f.NotAttempted)
	assert.Len(t, f.Failed(), 2)
}

func TestFirstBodyFailureStopsFailFastMode(t *testing.T) {
	resp := makeResponse(200, `{"orders":[],"pageInfo":{"page":0}}`)
	e := Status(200).Body("orders", IsNonEmptySequence()).Body("pageInfo", IsNotNull())

	f := requireFailure(t, Assert(resp, e))
	assert.Equal(t, BodyAssertionFailure, f.Kind)
	assert.Len(t, f.Checks, 2)
	assert.Equal(t, []string{"pageInfo is not null"}, f.NotAttempted)

	f = requireFailure(t, AssertAll(resp, e))
	assert.Len(t, f.Checks, 3)
	assert.Empty(t, f.NotAttempted)
}

func TestMissingPathIsReportedAsAbsent(t *testing.T) {
	f := requireFailure(t, Assert(makeResponse(200, `{}`), Status(200).Body("id", IsNotNull())))
	assert.Equal(t, "absent", f.Checks[1].Actual)
	assert.Contains(t, f.Error(), "id: expected is not null, got absent")
}

func TestExplicitNullIsPresentButFailsIsNotNull(t *testing.T) {
	f := requireFailure(t, Assert(makeResponse(200, `{"id":null}`), Status(200).Body("id", IsNotNull())))
	assert.Equal(t, "null", f.Checks[1].Actual)
}

func TestInvalidJSONBodyFailsBodyChecks(t *testing.T) {
	f := requireFailure(t, Assert(makeResponse(200, `not json`), Status(200).Body("id", IsNotNull())))
	assert.Equal(t, BodyAssertionFailure, f.Kind)
	assert.Contains(t, f.Checks[1].Actual, "not valid JSON")
}

func TestFailureMessageIsDeterministic(t *testing.T) {
	resp := makeResponse(404, `{"message":"not found"}`)
	err := AssertAll(resp, Status(200).Body("id", IsNotNull()).Body("message", Equals("not found")))
	expected := "unexpected status for POST http://service/courier" +
		"\n  FAILED:  status: expected 200, got 404" +
		"\n  FAILED:  id: expected is not null, got absent" +
		"\n  ok:      message equals \"not found\"" +
		"\n  response body: {\"message\":\"not found\"}"
	assert.Equal(t, expected, err.Error())
}

func TestPredicates(t *testing.T) {
	for _, p := range []struct {
		name      string
		predicate Predicate
		value     string
		expected  bool
	}{
		{"equals string", Equals("a"), `"a"`, true},
		{"equals string mismatch", Equals("a"), `"b"`, false},
		{"equals number", Equals(3), `3.0`, true},
		{"equals bool", Equals(true), `true`, true},
		{"equals array", Equals([]string{"BLACK"}), `["BLACK"]`, true},
		{"equals ldvalue", Equals(ldvalue.String("x")), `"x"`, true},
		{"not null", IsNotNull(), `0`, true},
		{"not null with null", IsNotNull(), `null`, false},
		{"non-empty array", IsNonEmptySequence(), `[1]`, true},
		{"empty array", IsNonEmptySequence(), `[]`, false},
		{"object is not a sequence", IsNonEmptySequence(), `{"a":1}`, false},
		{"non-empty string", IsNonEmptyString(), `"x"`, true},
		{"empty string", IsNonEmptyString(), `""`, false},
		{"non-empty number", IsNonEmpty(), `500001`, true},
		{"non-empty zero", IsNonEmpty(), `0`, false},
		{"non-empty text", IsNonEmpty(), `"a1"`, true},
		{"non-empty blank text", IsNonEmpty(), `""`, false},
		{"non-empty null", IsNonEmpty(), `null`, false},
		{"non-empty false", IsNonEmpty(), `false`, false},
		{"non-empty object", IsNonEmpty(), `{"a":1}`, true},
		{"non-empty empty array", IsNonEmpty(), `[]`, false},
		{"pattern on string", MatchesPattern(`^Курьер .* 1 `), `"Курьер с идентификатором 1 не найден"`, true},
		{"pattern on number", MatchesPattern(`^\d+$`), `12345`, true},
		{"pattern on null", MatchesPattern(`.*`), `null`, false},
		{"contains", Contains("123"), `"courier 123 not found"`, true},
		{"does not contain", Contains("124"), `"courier 123 not found"`, false},
	} {
		t.Run(p.name, func(t *testing.T) {
			var v ldvalue.Value
			require.NoError(t, json.Unmarshal([]byte(p.value), &v))
			assert.Equal(t, p.expected, p.predicate.test(v))
		})
	}
}

func TestPathLookup(t *testing.T) {
	body := []byte(`{"orders":[{"id":7,"color":["GREY"]}],"pageInfo":{"total":1,"next":null},"0":"zero","a.b":true}`)

	for _, p := range []struct {
		path     string
		expected string
		present  bool
	}{
		{"pageInfo.total", "1", true},
		{"$.pageInfo.total", "1", true},
		{"orders[0].id", "7", true},
		{"orders[0].color[0]", `"GREY"`, true},
		{"orders[1].id", "null", false},
		{"pageInfo.missing", "null", false},
		{"orders.id", "null", false},
		{"pageInfo.next", "null", true},
		{"[0]", "null", false},
		{"a.b", "null", false},
		{"$.orders[0].color", `["GREY"]`, true},
	} {
		t.Run(p.path, func(t *testing.T) {
			v, present, err := lookup(body, p.path)
			require.NoError(t, err)
			assert.Equal(t, p.present, present)
			assert.Equal(t, p.expected, v.JSONString())
		})
	}

	_, _, err := lookup(body, "orders[x]")
	assert.Error(t, err)
	_, _, err = lookup(body, "a..b")
	assert.Error(t, err)
}

func TestExpectationIsImmutable(t *testing.T) {
	base := Status(200).Body("a", IsNotNull())
	e1 := base.Body("b", IsNotNull())
	e2 := base.Body("c", IsNotNull())
	assert.Len(t, base.Checks, 1)
	assert.Equal(t, "b", e1.Checks[1].Path)
	assert.Equal(t, "c", e2.Checks[1].Path)
	assert.Equal(t, "status 200, a is not null, c is not null", e2.String())
}

func TestEmptyBodyHasNoPaths(t *testing.T) {
	f := requireFailure(t, Assert(makeResponse(200, ""), Status(200).Body("$", IsNotNull())))
	assert.Equal(t, "absent", f.Checks[1].Actual)
}
