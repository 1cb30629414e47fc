package couriertests

import (
	"github.com/courier-qa/courier-contract-tests/config"
	"github.com/courier-qa/courier-contract-tests/courier"
	"github.com/courier-qa/courier-contract-tests/framework/ctest"
	"github.com/courier-qa/courier-contract-tests/framework/expect"
	"github.com/courier-qa/courier-contract-tests/framework/harness"

	"github.com/stretchr/testify/require"
)

type CourierTestContext struct {
	fixtures *courier.Fixtures
	config   config.Config
}

func requireContext(t *ctest.T) CourierTestContext {
	if c, ok := t.Context().(CourierTestContext); ok {
		return c
	}
	panic("CourierTestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// fixturesFor returns a fixture manager whose requests go to the test's debug log.
func fixturesFor(t *ctest.T) *courier.Fixtures {
	return requireContext(t).fixtures.WithLogger(t.DebugLogger())
}

func apiFor(t *ctest.T) *courier.API {
	return fixturesFor(t).API()
}

func configFor(t *ctest.T) config.Config {
	return requireContext(t).config
}

// requireResponse stops the test unless the request got a response matching e. Checks are
// evaluated in order and stop at the first failure.
func requireResponse(t *ctest.T, resp *harness.Response, err error, e expect.Expectation) *harness.Response {
	require.NoError(t, err)
	if failure := expect.Assert(resp, e); failure != nil {
		t.Errorf("%s", failure)
		t.FailNow()
	}
	return resp
}

// checkResponse is like requireResponse, but reports every check that failed.
func checkResponse(t *ctest.T, resp *harness.Response, err error, e expect.Expectation) {
	require.NoError(t, err)
	if failure := expect.AssertAll(resp, e); failure != nil {
		t.Errorf("%s", failure)
	}
}
