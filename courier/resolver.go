package courier

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/courier-qa/courier-contract-tests/courierapi"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Resolver finds the remote id of a courier by logging in as that courier, since the create
// endpoint does not return it. A failed lookup is never retried.
type Resolver struct {
	api *API
}

func NewResolver(api *API) *Resolver {
	return &Resolver{api: api}
}

// Resolve returns the id of the courier with the given credentials.
func (r *Resolver) Resolve(ctx context.Context, spec courierapi.CourierParams) (string, error) {
	resp, err := r.api.Login(ctx, spec.Credentials())
	if err != nil {
		return "", &ResolutionError{Kind: ResolutionTransport, Login: spec.Login, Err: err}
	}
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", &ResolutionError{Kind: Unauthorized, Login: spec.Login, Response: resp}
	default:
		return "", &ResolutionError{Kind: ResolutionUnexpectedStatus, Login: spec.Login, Response: resp}
	}

	if resp.JSONErr != nil {
		return "", &ResolutionError{Kind: DeserializationFailed, Login: spec.Login, Response: resp, Err: resp.JSONErr}
	}
	id, ok := idFromValue(resp.JSON.GetByKey("id"))
	if !ok {
		return "", &ResolutionError{
			Kind:     DeserializationFailed,
			Login:    spec.Login,
			Response: resp,
			Err:      errors.New(`response has no usable "id" property`),
		}
	}
	return id, nil
}

func idFromValue(v ldvalue.Value) (string, bool) {
	switch v.Type() {
	case ldvalue.NumberType:
		return strconv.FormatFloat(v.Float64Value(), 'f', -1, 64), true
	case ldvalue.StringType:
		return v.StringValue(), v.StringValue() != ""
	default:
		return "", false
	}
}
