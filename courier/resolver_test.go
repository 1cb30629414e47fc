package courier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courier-qa/courier-contract-tests/courier/couriermock"
	"github.com/courier-qa/courier-contract-tests/courierapi"
	"github.com/courier-qa/courier-contract-tests/framework/harness"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveWith(t *testing.T, handler http.Handler, spec courierapi.CourierParams) (string, error) {
	var id string
	var err error
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resolver := NewResolver(NewAPI(harness.NewClient(server.URL, time.Second*5)))
		id, err = resolver.Resolve(context.Background(), spec)
	})
	return id, err
}

func requireResolutionError(t *testing.T, err error, kind ResolutionErrorKind) *ResolutionError {
	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, kind, re.Kind)
	return re
}

func TestResolveNumericID(t *testing.T) {
	service := couriermock.New()
	service.AddCourier(alice)
	id, err := resolveWith(t, service, alice)
	require.NoError(t, err)
	assert.Equal(t, "1001", id)

	login := service.Requests()[0]
	assert.Equal(t, courierapi.CourierLoginPath, login.Path)
	assert.JSONEq(t, `{"login":"alice1","password":"secret"}`, string(login.Body))
}

func TestResolveStringID(t *testing.T) {
	id, err := resolveWith(t, httphelpers.HandlerWithJSONResponse(map[string]interface{}{"id": "abc"}, nil), alice)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestResolveWrongPasswordIsUnauthorized(t *testing.T) {
	service := couriermock.New()
	service.AddCourier(alice)
	_, err := resolveWith(t, service, courierapi.CourierParams{Login: alice.Login, Password: "wrong"})
	re := requireResolutionError(t, err, Unauthorized)
	assert.Equal(t, 404, re.Response.StatusCode)
}

func TestResolveUnknownCourierIsUnauthorized(t *testing.T) {
	_, err := resolveWith(t, couriermock.New(), alice)
	requireResolutionError(t, err, Unauthorized)
}

func TestResolveBadRequestIsUnauthorized(t *testing.T) {
	_, err := resolveWith(t, couriermock.New(), courierapi.CourierParams{Login: "alice1"})
	re := requireResolutionError(t, err, Unauthorized)
	assert.Equal(t, 400, re.Response.StatusCode)
}

func TestResolveServerErrorIsUnexpectedStatus(t *testing.T) {
	_, err := resolveWith(t, httphelpers.HandlerWithStatus(502), alice)
	requireResolutionError(t, err, ResolutionUnexpectedStatus)
}

func TestResolveDeserializationFailures(t *testing.T) {
	for name, handler := range map[string]http.Handler{
		"invalid JSON": httphelpers.HandlerWithResponse(200, nil, []byte("not json")),
		"no id":        httphelpers.HandlerWithJSONResponse(map[string]interface{}{}, nil),
		"null id":      httphelpers.HandlerWithJSONResponse(map[string]interface{}{"id": nil}, nil),
		"empty id":     httphelpers.HandlerWithJSONResponse(map[string]interface{}{"id": ""}, nil),
		"not object":   httphelpers.HandlerWithJSONResponse([]int{1}, nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := resolveWith(t, handler, alice)
			requireResolutionError(t, err, DeserializationFailed)
		})
	}
}

func TestResolveTransportError(t *testing.T) {
	_, err := resolveWith(t, httphelpers.BrokenConnectionHandler(), alice)
	re := requireResolutionError(t, err, ResolutionTransport)
	assert.True(t, harness.IsTransportError(re))
	assert.Contains(t, re.Error(), `resolving id of courier "alice1" failed (transport error)`)
}
