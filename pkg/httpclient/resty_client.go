package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A zero timeout leaves deadlines to the caller's context.
func NewRestyClient(timeout time.Duration) *RestyClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c}
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
func (r *restyResponseAdapter) IsSuccess() bool { return r.resp.IsSuccess() }

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("GET %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s returned status %d body: %s", e.URL, e.StatusCode, e.Snippet)
}

// CheckStatus returns a *StatusError when resp is not a 2xx response.
func CheckStatus(url string, resp Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return &StatusError{URL: url, StatusCode: resp.StatusCode(), Snippet: ResponseSnippet(resp.Body())}
}

// ResponseSnippet trims body to a length that is safe to put in logs and errors.
func ResponseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
