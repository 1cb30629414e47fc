package couriertests

import (
	"github.com/courier-qa/courier-contract-tests/courier"
	"github.com/courier-qa/courier-contract-tests/courierapi"
	"github.com/courier-qa/courier-contract-tests/framework/ctest"
	"github.com/courier-qa/courier-contract-tests/framework/expect"
)

func DoCourierLoginTests(t *ctest.T) {
	row := configFor(t).Couriers[0]

	t.Run("success", func(t *ctest.T) {
		f := NewCourier(t, newCourierSpec(t, row))
		resp, err := apiFor(t).Login(t.RequestContext(), f.Spec().Credentials())
		requireResponse(t, resp, err, expect.Status(200).Body("id", expect.IsNotNull()))
	})

	t.Run("missing login field", func(t *ctest.T) {
		resp, err := apiFor(t).Login(t.RequestContext(), courierapi.PasswordOnly{Password: row.Password})
		requireResponse(t, resp, err, expect.Status(400).
			Body("message", expect.Equals(courierapi.MessageNotEnoughDataToLogin)))
	})

	t.Run("empty password", func(t *ctest.T) {
		f := NewCourier(t, newCourierSpec(t, row))
		resp, err := apiFor(t).Login(t.RequestContext(), courierapi.LoginParams{Login: f.Login()})
		requireResponse(t, resp, err, expect.Status(400).
			Body("message", expect.Equals(courierapi.MessageNotEnoughDataToLogin)))
	})

	// The service gives the same answer for a wrong password as for an unknown login.
	t.Run("wrong password", func(t *ctest.T) {
		f := NewCourier(t, newCourierSpec(t, row))
		credentials := f.Spec().Credentials()
		credentials.Password += "-wrong"
		resp, err := apiFor(t).Login(t.RequestContext(), credentials)
		requireResponse(t, resp, err, expect.Status(404).
			Body("message", expect.Equals(courierapi.MessageAccountNotFound)))
	})

	t.Run("unknown courier", func(t *ctest.T) {
		credentials := courierapi.LoginParams{
			Login:    courier.UniqueLogin(configFor(t).LoginPrefix + "nonexistent-"),
			Password: row.Password,
		}
		resp, err := apiFor(t).Login(t.RequestContext(), credentials)
		requireResponse(t, resp, err, expect.Status(404).
			Body("message", expect.Equals(courierapi.MessageAccountNotFound)))
	})
}
