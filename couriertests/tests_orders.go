package couriertests

import (
	"strings"

	"github.com/courier-qa/courier-contract-tests/courierapi"
	"github.com/courier-qa/courier-contract-tests/framework/ctest"
	"github.com/courier-qa/courier-contract-tests/framework/expect"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var orderPageExpectation = expect.Status(200).
	Body("orders", expect.IsNonEmptySequence()).
	Body("pageInfo", expect.IsNotNull())

func DoOrderListTests(t *ctest.T) {
	cfg := configFor(t)

	t.Run("pagination", func(t *ctest.T) {
		resp, err := apiFor(t).ListOrders(t.RequestContext(), courierapi.Page(10, 0))
		requireResponse(t, resp, err, orderPageExpectation)
	})

	t.Run("unknown courier id", func(t *ctest.T) {
		query := courierapi.OrderListQuery{CourierID: ldvalue.NewOptionalString(cfg.UnknownCourierID)}
		resp, err := apiFor(t).ListOrders(t.RequestContext(), query)
		requireResponse(t, resp, err, expect.Status(404).
			Body("message", expect.Contains(cfg.UnknownCourierID)).
			Body("message", expect.Equals(courierapi.CourierNotFoundMessage(cfg.UnknownCourierID))))
	})

	ctest.Table(t, "", cfg.NearestStations, func(station string) string { return "nearest station " + station },
		func(t *ctest.T, station string) {
			query := courierapi.Page(10, 0)
			query.NearestStation = []string{station}
			resp, err := apiFor(t).ListOrders(t.RequestContext(), query)
			requireResponse(t, resp, err, orderPageExpectation)
		})
}

// DoOrderCreationTests creates one order for each set of color preferences. All checks are
// evaluated for every row so that the report shows the full picture for each one.
func DoOrderCreationTests(t *ctest.T) {
	ctest.Table(t, "", configFor(t).OrderColors, colorsName,
		func(t *ctest.T, colors []string) {
			resp, err := apiFor(t).CreateOrder(t.RequestContext(), courierapi.NewOrder(colors))
			checkResponse(t, resp, err, expect.Status(201).Body("track", expect.IsNonEmpty()))
		})
}

func colorsName(colors []string) string {
	return "[" + strings.Join(colors, " ") + "]"
}
