package couriertests

import (
	"github.com/courier-qa/courier-contract-tests/config"
	"github.com/courier-qa/courier-contract-tests/courier"
	"github.com/courier-qa/courier-contract-tests/courierapi"
	"github.com/courier-qa/courier-contract-tests/framework/ctest"
	"github.com/courier-qa/courier-contract-tests/framework/harness"

	"github.com/stretchr/testify/require"
)

// newCourierSpec makes the parameters for a courier whose login no other test uses.
func newCourierSpec(t *ctest.T, row config.CourierCase) courierapi.CourierParams {
	return courierapi.CourierParams{
		Login:     courier.UniqueLogin(configFor(t).LoginPrefix + row.Login + "-"),
		Password:  row.Password,
		FirstName: row.FirstName,
	}
}

// NewCourier creates a courier that is deleted when the test ends, and stops the test if it
// could not be created. Anything that goes wrong during the deletion is reported as a warning.
func NewCourier(t *ctest.T, spec courierapi.CourierParams) *courier.Fixture {
	fixtures := fixturesFor(t)
	f, err := fixtures.Create(t.RequestContext(), spec)
	require.NoError(t, err)
	deferFinalize(t, fixtures, f)
	return f
}

func deferFinalize(t *ctest.T, fixtures *courier.Fixtures, f *courier.Fixture) {
	t.Defer(func() {
		for _, w := range fixtures.Finalize(t.RequestContext(), f) {
			t.Warn("%s", w)
		}
	})
}

// ResolveCourier looks up the courier's id and stops the test if that fails.
func ResolveCourier(t *ctest.T, f *courier.Fixture) string {
	require.NoError(t, fixturesFor(t).Resolve(t.RequestContext(), f))
	t.Debug("courier %q has id %s", f.Login(), f.ID().StringValue())
	return f.ID().StringValue()
}

// CreateCourierExpectingRejection tries to create a courier that the service should refuse,
// and returns the service's response. If the service creates it after all, the test fails and
// the courier is deleted again.
func CreateCourierExpectingRejection(t *ctest.T, spec courierapi.CourierParams) *harness.Response {
	fixtures := fixturesFor(t)
	f, err := fixtures.Create(t.RequestContext(), spec)
	return requireRejected(t, fixtures, spec, f, err)
}

// CreateDuplicateExpectingRejection is like CreateCourierExpectingRejection, for a courier
// with the same login as existing, which the test still holds.
func CreateDuplicateExpectingRejection(t *ctest.T, existing *courier.Fixture, spec courierapi.CourierParams) *harness.Response {
	fixtures := fixturesFor(t)
	f, err := fixtures.CreateSharingLogin(t.RequestContext(), existing, spec)
	return requireRejected(t, fixtures, spec, f, err)
}

func requireRejected(
	t *ctest.T,
	fixtures *courier.Fixtures,
	spec courierapi.CourierParams,
	f *courier.Fixture,
	err error,
) *harness.Response {
	if err == nil {
		deferFinalize(t, fixtures, f)
		require.Fail(t, "courier was created although it should have been rejected", "login: %q", spec.Login)
	}
	var createErr *courier.CreateError
	require.ErrorAs(t, err, &createErr)
	require.NotNil(t, createErr.Response, "%s", err)
	return createErr.Response
}
