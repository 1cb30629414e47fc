package harness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const servicePollInterval = time.Millisecond * 200

// AwaitService waits until the service at the client's base URL answers an HTTP request, with
// any status. It prints a progress dot for every attempt. The service under test is assumed to
// be up already, so this only guards against pointing the harness at a wrong or unreachable
// host before any fixtures get created.
func (c *Client) AwaitService(ctx context.Context, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", c.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		_, err := c.Send(ctx, http.MethodHead, "", RequestOptions{})
		if err == nil {
			fmt.Fprintln(output)
			return nil
		}
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("service did not respond, result of last query was: %w", err)
		}
		select {
		case <-ctx.Done():
		case <-time.After(servicePollInterval):
		}
	}
}
