package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/courier-qa/courier-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultRequestTimeout is used if NewClient is given a zero timeout.
const DefaultRequestTimeout = time.Second * 10

// Client sends requests to the service under test. It is safe to share between tests; use
// WithLogger to get a copy that writes to a particular test's debug log.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  framework.Logger
}

// RequestOptions are the optional parts of a request.
type RequestOptions struct {
	Query url.Values

	// JSONBody, if not nil, is encoded with encoding/json and sent with a JSON content type.
	JSONBody interface{}
}

// Response is an HTTP response that has been fully read.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte

	// JSON is the parsed body. It is a null value if the body was empty or not valid JSON;
	// in the latter case JSONErr says why.
	JSON    ldvalue.Value
	JSONErr error
}

func (r *Response) String() string {
	return fmt.Sprintf("HTTP %d %s", r.StatusCode, strings.TrimSpace(string(r.Body)))
}

// NewClient creates a Client for a service whose endpoints are all relative to baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
		logger:  framework.NullLogger(),
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Timeout() time.Duration { return c.timeout }

// WithLogger returns a copy of the Client that logs each request and response to logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

// Send performs a request and reads the whole response. The per-call timeout applies in
// addition to any deadline ctx already has.
func (c *Client) Send(ctx context.Context, method, path string, opts RequestOptions) (*Response, error) {
	target := c.baseURL + path
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var body []byte
	if opts.JSONBody != nil {
		data, err := json.Marshal(opts.JSONBody)
		if err != nil {
			return nil, fmt.Errorf("encoding request body for %s %s: %w", method, path, err)
		}
		body = data
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request for %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Printf("Request: %s", CurlCommand(method, target, req.Header, body))
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("Request failed: %s", err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("Reading response body failed: %s", err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	r := &Response{
		Method:     method,
		URL:        target,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &r.JSON); err != nil {
			r.JSON = ldvalue.Null()
			r.JSONErr = err
		}
	}
	c.logger.Printf("Response: %s", r)
	return r, nil
}
