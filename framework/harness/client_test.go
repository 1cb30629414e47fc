package harness

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/courier-qa/courier-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendReturnsErrorStatusAsResponse(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(404, nil, []byte(`{"message":"not found"}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := NewClient(server.URL, time.Second)
		resp, err := c.Send(context.Background(), "GET", "/orders", RequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "not found", resp.JSON.GetByKey("message").StringValue())
		assert.NoError(t, resp.JSONErr)
	})
}

func TestSendEncodesJSONBodyAndQuery(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(201))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := NewClient(server.URL+"/", time.Second)
		body := struct {
			Login string `json:"login"`
		}{Login: `quote"d`}
		query := url.Values{"limit": []string{"10"}}
		resp, err := c.Send(context.Background(), "POST", "/courier", RequestOptions{Query: query, JSONBody: body})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/courier", r.Request.URL.Path)
		assert.Equal(t, "10", r.Request.URL.Query().Get("limit"))
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"login":"quote\"d"}`, string(r.Body))
	})
}

func TestSendKeepsNonJSONBody(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(502, nil, []byte("<html>bad gateway</html>"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resp, err := NewClient(server.URL, time.Second).Send(context.Background(), "GET", "/", RequestOptions{})
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
		assert.True(t, resp.JSON.IsNull())
		assert.Error(t, resp.JSONErr)
		assert.Contains(t, resp.String(), "bad gateway")
	})
}

func TestConnectionRefusedIsTransportError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	serverURL := server.URL
	server.Close()

	_, err := NewClient(serverURL, time.Second).Send(context.Background(), "GET", "/orders", RequestOptions{})
	require.Error(t, err)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.False(t, te.Timeout())
	assert.True(t, IsTransportError(err))
}

func TestPerCallTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		defer close(release)
		_, err := NewClient(server.URL, time.Millisecond*50).Send(context.Background(), "GET", "/", RequestOptions{})
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.True(t, te.Timeout())
	})
}

func TestRequestIsLoggedAsCurlCommand(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		var logger framework.CapturingLogger
		c := NewClient(server.URL, time.Second).WithLogger(&logger)
		_, err := c.Send(context.Background(), "POST", "/courier/login",
			RequestOptions{JSONBody: map[string]string{"login": "a b"}})
		require.NoError(t, err)
		output := logger.Output()
		require.NotEmpty(t, output)
		assert.Contains(t, output[0].Message, "curl -s -X POST")
		assert.Contains(t, output[0].Message, `'{"login":"a b"}'`)
	})
}

func TestCurlCommandQuotesArguments(t *testing.T) {
	headers := http.Header{"Content-Type": []string{"application/json"}}
	cmd := CurlCommand("POST", "http://host/courier", headers, []byte(`{"firstName":"O'Brien"}`))
	assert.Equal(t,
		`curl -s -X POST -H 'Content-Type: application/json' -d '{"firstName":"O'"'"'Brien"}' http://host/courier`,
		cmd)
}

func TestAwaitServiceSucceedsOnAnyStatus(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(server *httptest.Server) {
		var out bytes.Buffer
		err := NewClient(server.URL, time.Second).AwaitService(context.Background(), time.Second, &out)
		assert.NoError(t, err)
		assert.Contains(t, out.String(), "Connecting to service at "+server.URL)
	})
}

func TestAwaitServiceTimesOut(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	serverURL := server.URL
	server.Close()

	var out bytes.Buffer
	err := NewClient(serverURL, time.Millisecond*100).AwaitService(context.Background(), time.Millisecond*300, &out)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
}
