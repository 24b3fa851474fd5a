// Package dls is a read-only client for the DYMO Label Software web service
// that a label-printer host exposes on the local network.
package dls

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/labybel/labybel/pkg/httpclient"
)

const (
	// DefaultPort is used when New is not given WithPort.
	DefaultPort uint16 = 41951
	// BasePath is the fixed path of the printing API on every DLS host.
	BasePath = "DYMO/DLS/Printing"

	EndpointStatusConnected = "StatusConnected"
	EndpointGetPrinters     = "GetPrinters"
)

// Client talks to one DLS host. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	host string
	port uint16
	http httpclient.Client
	log  Logger
}

// Option customises a Client at construction.
type Option func(*Client)

// WithPort overrides DefaultPort.
func WithPort(port uint16) Option {
	return func(c *Client) { c.port = port }
}

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(client httpclient.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger enables request logging.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// New creates a client for host, which must include the scheme
// (e.g. "http://127.0.0.1"). It never fails.
func New(host string, opts ...Option) *Client {
	c := &Client{
		host: host,
		port: DefaultPort,
		log:  noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// No client-side timeout; deadlines come from the caller's context.
		c.http = httpclient.NewRestyClient(0)
	}
	return c
}

// Host returns the scheme and host the client was built with.
func (c *Client) Host() string { return c.host }

// Port returns the effective port.
func (c *Client) Port() uint16 { return c.port }

// EndpointURL builds "{host}:{port}/DYMO/DLS/Printing/{endpoint}". The host is
// used verbatim, without any escaping.
func (c *Client) EndpointURL(endpoint string) string {
	return c.host + ":" + strconv.FormatUint(uint64(c.port), 10) + "/" + BasePath + "/" + endpoint
}

// Connected reports whether the DLS host considers itself connected.
func (c *Client) Connected(ctx context.Context) (bool, error) {
	body, err := c.get(ctx, EndpointStatusConnected)
	if err != nil {
		return false, err
	}

	// A bad status body is reported as a request failure, not a decode failure.
	var connected *bool
	if err := json.Unmarshal(body, &connected); err != nil {
		return false, newError(KindRequest, EndpointStatusConnected,
			fmt.Errorf("decode status body %q: %w", httpclient.ResponseSnippet(body), err))
	}
	if connected == nil {
		return false, newError(KindRequest, EndpointStatusConnected,
			fmt.Errorf("decode status body %q: not a boolean", httpclient.ResponseSnippet(body)))
	}
	return *connected, nil
}

// Printers lists the printers known to the DLS host in the order the host reports them.
// No printers is an empty, non-nil slice.
func (c *Client) Printers(ctx context.Context) ([]Printer, error) {
	body, err := c.get(ctx, EndpointGetPrinters)
	if err != nil {
		return nil, err
	}

	printers, err := decodePrinters(body)
	if err != nil {
		c.log.WarnObj("printers response rejected", "response", map[string]any{
			"error": err.Error(),
			"body":  httpclient.ResponseSnippet(body),
		})
		return nil, newError(KindDeserialization, EndpointGetPrinters, err)
	}
	return printers, nil
}

// get performs one GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	url := c.EndpointURL(endpoint)
	start := time.Now()
	resp, err := c.http.Get(ctx, url, nil)
	if err != nil {
		c.log.WarnObj("dls request failed", "request", map[string]any{
			"endpoint":   endpoint,
			"url":        url,
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return nil, newError(KindRequest, endpoint, err)
	}

	c.log.DebugObj("dls request completed", "request", map[string]any{
		"endpoint":   endpoint,
		"url":        url,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if err := httpclient.CheckStatus(url, resp); err != nil {
		return nil, newError(KindRequest, endpoint, err)
	}
	return resp.Body(), nil
}
