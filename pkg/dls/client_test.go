package dls

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/labybel/labybel/pkg/httpclient"
)

// fakeResponse lets us stub the httpclient.Client interface.
type fakeResponse struct {
	body       []byte
	statusCode int
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.statusCode }
func (f fakeResponse) IsSuccess() bool { return f.statusCode >= 200 && f.statusCode < 300 }

// fakeHTTPClient returns canned responses per URL to avoid network calls.
type fakeHTTPClient struct {
	responses map[string]fakeResponse
	calls     []string
}

func (f *fakeHTTPClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	f.calls = append(f.calls, url)
	resp, ok := f.responses[url]
	if !ok {
		return nil, errors.New("dial tcp: connection refused")
	}
	return resp, nil
}

// recordingLogger counts warn entries.
type recordingLogger struct {
	noopLogger
	warns []string
}

func (r *recordingLogger) WarnObj(msg, _ string, _ interface{}) { r.warns = append(r.warns, msg) }

// newTestServer serves body with status on every path and returns a client pointed at it.
func newTestServer(t *testing.T, status int, body string) (*Client, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return clientFor(t, srv.URL), &paths
}

func clientFor(t *testing.T, rawURL string) *Client {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	port, err := strconv.ParseUint(u.Port(), 10, 16)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return New(u.Scheme+"://"+u.Hostname(), WithPort(uint16(port)))
}

func TestNewDefaultsPort(t *testing.T) {
	c := New("http://127.0.0.1")
	if c.Port() != 41951 {
		t.Fatalf("Port = %d want 41951", c.Port())
	}
	if c.Host() != "http://127.0.0.1" {
		t.Fatalf("Host = %q", c.Host())
	}
	if New("http://h", WithPort(8631)).Port() != 8631 {
		t.Fatalf("WithPort ignored")
	}
}

func TestEndpointURL(t *testing.T) {
	c := New("http://127.0.0.1")
	tests := map[string]string{
		EndpointStatusConnected: "http://127.0.0.1:41951/DYMO/DLS/Printing/StatusConnected",
		EndpointGetPrinters:     "http://127.0.0.1:41951/DYMO/DLS/Printing/GetPrinters",
	}
	for endpoint, want := range tests {
		if got := c.EndpointURL(endpoint); got != want {
			t.Errorf("EndpointURL(%s) = %s want %s", endpoint, got, want)
		}
	}
}

func TestOperationsRequestExpectedURLs(t *testing.T) {
	client := &fakeHTTPClient{
		responses: map[string]fakeResponse{
			"https://host:1/DYMO/DLS/Printing/StatusConnected": {body: []byte("true"), statusCode: http.StatusOK},
			"https://host:1/DYMO/DLS/Printing/GetPrinters":     {body: []byte("<Printers/>"), statusCode: http.StatusOK},
		},
	}
	c := New("https://host", WithPort(1), WithHTTPClient(client))

	if _, err := c.Connected(context.Background()); err != nil {
		t.Fatalf("Connected: %v", err)
	}
	if _, err := c.Printers(context.Background()); err != nil {
		t.Fatalf("Printers: %v", err)
	}
	if len(client.calls) != 2 {
		t.Fatalf("expected 2 calls, got %v", client.calls)
	}
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"true", "true", true},
		{"false", "false", false},
		{"trailing newline", "true\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, paths := newTestServer(t, http.StatusOK, tt.body)
			got, err := c.Connected(context.Background())
			if err != nil {
				t.Fatalf("Connected: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Connected = %v want %v", got, tt.want)
			}
			if len(*paths) != 1 || (*paths)[0] != "/DYMO/DLS/Printing/StatusConnected" {
				t.Fatalf("unexpected paths %v", *paths)
			}
		})
	}
}

func TestConnectedNonBooleanBodyIsRequestError(t *testing.T) {
	for _, body := range []string{"True", `"true"`, "1", "", "null", " null\n"} {
		c, _ := newTestServer(t, http.StatusOK, body)
		_, err := c.Connected(context.Background())
		if !errors.Is(err, ErrRequest) {
			t.Fatalf("body %q: expected ErrRequest, got %v", body, err)
		}
	}
}

func TestPrintersOverHTTP(t *testing.T) {
	c, paths := newTestServer(t, http.StatusOK, `<Printers><LabelWriterPrinter><Name>LabelWriter 450</Name><ModelName>450</ModelName><IsConnected>True</IsConnected><IsLocal>False</IsLocal><IsTwinTurbo>False</IsTwinTurbo></LabelWriterPrinter></Printers>`)

	printers, err := c.Printers(context.Background())
	if err != nil {
		t.Fatalf("Printers: %v", err)
	}
	if len(printers) != 1 || printers[0].Name != "LabelWriter 450" || !printers[0].IsConnected || printers[0].IsLocal {
		t.Fatalf("unexpected printers %#v", printers)
	}
	if (*paths)[0] != "/DYMO/DLS/Printing/GetPrinters" {
		t.Fatalf("unexpected path %s", (*paths)[0])
	}
}

func TestPrintersMalformedXMLIsDeserializationError(t *testing.T) {
	log := &recordingLogger{}
	client := &fakeHTTPClient{responses: map[string]fakeResponse{
		"http://h:41951/DYMO/DLS/Printing/GetPrinters": {body: []byte("<Printers><oops"), statusCode: http.StatusOK},
	}}
	c := New("http://h", WithHTTPClient(client), WithLogger(log))

	_, err := c.Printers(context.Background())
	if !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, got %v", err)
	}
	if errors.Is(err, ErrRequest) {
		t.Fatalf("deserialization error must not match ErrRequest")
	}
	if len(log.warns) != 1 {
		t.Fatalf("expected one warning, got %v", log.warns)
	}
}

func TestTransportFailureIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := clientFor(t, srv.URL)
	srv.Close()

	if _, err := c.Connected(context.Background()); !errors.Is(err, ErrRequest) {
		t.Errorf("Connected: expected ErrRequest, got %v", err)
	}
	_, err := c.Printers(context.Background())
	if !errors.Is(err, ErrRequest) || errors.Is(err, ErrDeserialization) {
		t.Errorf("Printers: expected ErrRequest only, got %v", err)
	}
}

func TestNonSuccessStatusIsRequestError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusInternalServerError, "<Printers/>")

	_, err := c.Printers(context.Background())
	if !errors.Is(err, ErrRequest) {
		t.Fatalf("expected ErrRequest, got %v", err)
	}
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected wrapped *httpclient.StatusError, got %v", err)
	}
}

func TestCancelledContextIsRequestError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, "true")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Connected(ctx); !errors.Is(err, ErrRequest) {
		t.Fatalf("expected ErrRequest, got %v", err)
	}
}
