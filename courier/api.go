package courier

import (
	"context"
	"net/http"

	"github.com/courier-qa/courier-contract-tests/courierapi"
	"github.com/courier-qa/courier-contract-tests/framework"
	"github.com/courier-qa/courier-contract-tests/framework/harness"
)

// API sends typed requests to each endpoint of the service. It makes no assertions about the
// responses.
type API struct {
	client *harness.Client
}

func NewAPI(client *harness.Client) *API {
	return &API{client: client}
}

// WithLogger returns a copy of the API whose requests are logged to logger.
func (a *API) WithLogger(logger framework.Logger) *API {
	return &API{client: a.client.WithLogger(logger)}
}

func (a *API) CreateCourier(ctx context.Context, params courierapi.CourierParams) (*harness.Response, error) {
	return a.client.Send(ctx, http.MethodPost, courierapi.CourierPath, harness.RequestOptions{JSONBody: params})
}

// Login sends a login request. The body is normally a courierapi.LoginParams, but can be any
// value that encodes to the JSON object that a test wants to send.
func (a *API) Login(ctx context.Context, body interface{}) (*harness.Response, error) {
	return a.client.Send(ctx, http.MethodPost, courierapi.CourierLoginPath, harness.RequestOptions{JSONBody: body})
}

func (a *API) DeleteCourier(ctx context.Context, id string) (*harness.Response, error) {
	return a.client.Send(ctx, http.MethodDelete, courierapi.CourierByIDPath(id), harness.RequestOptions{})
}

func (a *API) CreateOrder(ctx context.Context, params courierapi.OrderParams) (*harness.Response, error) {
	return a.client.Send(ctx, http.MethodPost, courierapi.OrdersPath, harness.RequestOptions{JSONBody: params})
}

func (a *API) ListOrders(ctx context.Context, query courierapi.OrderListQuery) (*harness.Response, error) {
	return a.client.Send(ctx, http.MethodGet, courierapi.OrdersPath, harness.RequestOptions{Query: query.Values()})
}
