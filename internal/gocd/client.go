package gocd

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/counsyl/gocd-get-test-failures/internal/junit"
	"github.com/counsyl/gocd-get-test-failures/internal/report"
)

// DefaultTimeout bounds each request issued by the client.
const DefaultTimeout = 30 * time.Second

// Client talks to a GoCD server's files API using basic auth.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*Client)

// NewClient creates a client for the GoCD server at host. A bare host is
// reached over https; hosts carrying a scheme are used as given.
func NewClient(host, username, password string, opts ...Option) *Client {
	base := strings.TrimSuffix(host, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	c := &Client{
		baseURL:    base,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger configures structured logging for request progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithInsecureSkipVerify disables TLS certificate verification when skip is
// true. GoCD deployments behind self-signed certificates need this.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) {
		if !skip {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		c.httpClient.Transport = transport
	}
}

// TestFailures walks the run instances of ref's job and returns every failing
// test found in their nosetests reports. Runs are numbered from 1 and the
// walk ends at the first missing run. A missing first run means the build
// itself has no test results to fetch.
func (c *Client) TestFailures(ctx context.Context, ref Ref) ([]report.TestFailure, error) {
	failures := make([]report.TestFailure, 0)
	for run := 1; ; run++ {
		url := c.artifactURL(ref, run)
		body, err := c.get(ctx, url, "fetch test report")
		if err != nil {
			if IsNotFound(err) {
				if run == 1 {
					return nil, fmt.Errorf("no test results for %s/%d (stage %s, job %s): %w",
						ref.Pipeline, ref.Counter, ref.Stage, ref.Job, err)
				}
				break
			}
			if IsUnauthorized(err) {
				return nil, fmt.Errorf("%w: check GOCD_USER and GOCD_PASSWORD", err)
			}
			return nil, err
		}

		suites, err := junit.Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse test report %s: %w", url, err)
		}
		failures = append(failures, collect(suites, ref)...)
	}
	return failures, nil
}

// artifactURL names the nosetests report for one run instance of ref's job.
// The stage counter is pinned to 1; re-run stages are not addressed.
func (c *Client) artifactURL(ref Ref, run int) string {
	return fmt.Sprintf("%s/go/files/%s/%d/%s/1/%s-runInstance-%d/test-results/nosetests.xml",
		c.baseURL, ref.Pipeline, ref.Counter, ref.Stage, ref.Job, run)
}

func (c *Client) get(ctx context.Context, url, operation string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.SetBasicAuth(c.username, c.password)

	c.logger.InfoContext(ctx, "fetching", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "response", "url", url, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Operation: operation, Endpoint: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response from %s: %w", operation, url, err)
	}
	return body, nil
}

func collect(suites []junit.TestSuite, ref Ref) []report.TestFailure {
	var failures []report.TestFailure
	for _, suite := range suites {
		for _, tc := range suite.TestCases {
			if tc.Failure != nil {
				failures = append(failures, newFailure(suite, tc, "failure", tc.Failure, ref))
			}
			if tc.Error != nil {
				failures = append(failures, newFailure(suite, tc, "error", tc.Error, ref))
			}
		}
	}
	return failures
}

func newFailure(suite junit.TestSuite, tc junit.TestCase, kind string, res *junit.Result, ref Ref) report.TestFailure {
	suiteName := tc.ClassName
	if suiteName == "" {
		suiteName = suite.Name
	}
	return report.TestFailure{
		Suite:   suiteName,
		Test:    tc.Name,
		Stage:   ref.Stage,
		Job:     ref.Job,
		Kind:    kind,
		Message: res.Message,
		Output:  strings.TrimSpace(res.Content),
	}
}
