package couriertests

import (
	"github.com/courier-qa/courier-contract-tests/config"
	"github.com/courier-qa/courier-contract-tests/courier"
	"github.com/courier-qa/courier-contract-tests/courierapi"
	"github.com/courier-qa/courier-contract-tests/framework/ctest"
	"github.com/courier-qa/courier-contract-tests/framework/expect"

	"github.com/stretchr/testify/require"
)

func DoCourierCreationTests(t *ctest.T) {
	cfg := configFor(t)

	ctest.Table(t, "", cfg.Couriers, func(row config.CourierCase) string { return row.Login },
		func(t *ctest.T, row config.CourierCase) {
			t.Run("create", func(t *ctest.T) { doCreateCourier(t, row) })
			t.Run("duplicate login", func(t *ctest.T) {
				spec := newCourierSpec(t, row)
				doDuplicateCourier(t, spec, spec)
			})
			t.Run("same login different password and name", func(t *ctest.T) {
				spec := newCourierSpec(t, row)
				duplicate := courierapi.CourierParams{
					Login:     spec.Login,
					Password:  spec.Password + "-other",
					FirstName: spec.FirstName + " Other",
				}
				doDuplicateCourier(t, spec, duplicate)
			})
		})

	t.Run("empty password", func(t *ctest.T) {
		spec := newCourierSpec(t, cfg.Couriers[0])
		spec.Password = ""
		resp := CreateCourierExpectingRejection(t, spec)
		requireResponse(t, resp, nil, expect.Status(400).
			Body("message", expect.Equals(courierapi.MessageNotEnoughDataToCreate)))
	})

	t.Run("empty login", func(t *ctest.T) {
		spec := newCourierSpec(t, cfg.Couriers[0])
		spec.Login = ""
		resp := CreateCourierExpectingRejection(t, spec)
		requireResponse(t, resp, nil, expect.Status(400).
			Body("message", expect.Equals(courierapi.MessageNotEnoughDataToCreate)))
	})

	t.Run("double delete is reported", func(t *ctest.T) {
		fixtures := fixturesFor(t)
		f := NewCourier(t, newCourierSpec(t, cfg.Couriers[0]))
		ResolveCourier(t, f)
		require.NoError(t, fixtures.Delete(t.RequestContext(), f))
		if err := fixtures.Delete(t.RequestContext(), f); err != nil {
			t.Warn("second delete of the same courier failed: %s", err)
		} else {
			t.Debug("second delete of courier %q was accepted", f.Login())
		}
	})
}

func doCreateCourier(t *ctest.T, row config.CourierCase) {
	f := NewCourier(t, newCourierSpec(t, row))
	requireResponse(t, f.CreateResponse(), nil, expect.Status(201).Body("ok", expect.Equals(true)))
	ResolveCourier(t, f)
}

// doDuplicateCourier creates a courier and then tries to create another one with the
// duplicate's parameters, which must be rejected because the login is taken. Should the
// service accept it, both couriers are deleted when the sequence ends.
func doDuplicateCourier(t *ctest.T, spec, duplicate courierapi.CourierParams) {
	var first *courier.Fixture
	ctest.Sequence(t, "",
		ctest.Step{Name: "create first courier", Action: func(t *ctest.T) {
			first = NewCourier(t, spec)
			ResolveCourier(t, first)
		}},
		ctest.Step{Name: "create courier with same login", Action: func(t *ctest.T) {
			resp := CreateDuplicateExpectingRejection(t, first, duplicate)
			requireResponse(t, resp, nil, expect.Status(409).
				Body("message", expect.Equals(courierapi.MessageLoginInUse)))
		}},
	)
}
