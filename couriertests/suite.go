package couriertests

import (
	"context"

	"github.com/courier-qa/courier-contract-tests/config"
	"github.com/courier-qa/courier-contract-tests/courier"
	"github.com/courier-qa/courier-contract-tests/framework"
	"github.com/courier-qa/courier-contract-tests/framework/ctest"
)

func RunTestSuite(
	ctx context.Context,
	fixtures *courier.Fixtures,
	configuration config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	testContext := CourierTestContext{fixtures: fixtures, config: configuration}
	return ctest.Run(ctx, filter, testLogger, testContext, func(t *ctest.T) {
		t.Run("courier creation", DoCourierCreationTests)
		t.Run("courier login", DoCourierLoginTests)
		t.Run("order list", DoOrderListTests)
		t.Run("order creation", DoOrderCreationTests)
	})
}
