package anet

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

	"github.com/NCI-Agency/anet-orgchart/pkg/buildinfo"
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/httputil"
	"github.com/NCI-Agency/anet-orgchart/pkg/observability"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/source"
)

const (
	httpTimeout     = 30 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second
	graphqlPath     = "/graphql"
)

const orgFields = `
    uuid
    shortName
    longName
    identificationCode
    app6context
    app6standardIdentity
    app6symbolSet
    parentOrg { uuid }
    ascendantOrgs { uuid }
    positions {
      uuid
      name
      type
      role
      person { uuid name rank avatarUuid }
    }`

// orgQuery selects the root organization and all of its descendants.
const orgQuery = `query ($uuid: String!) {
  organization(uuid: $uuid) {` + orgFields + `
    descendantOrgs {` + orgFields + `
    }
  }
}`

// Client queries an ANET server.
type Client struct {
	endpoint *url.URL
	token    string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// NewClient returns a client for the ANET server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + graphqlPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "invalid ANET url %q", baseURL)
	}
	c := &Client{
		endpoint: u,
		http:     &http.Client{Timeout: httpTimeout},
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns "anet:" followed by the server's base URL.
func (c *Client) Name() string {
	return "anet:" + strings.TrimSuffix(c.endpoint.String(), graphqlPath)
}

// Endpoint returns the GraphQL endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint.String() }

// Fetch queries the organization and its descendants.
func (c *Client) Fetch(ctx context.Context, orgUUID string) (*org.Tree, error) {
	if err := source.ValidateOrgUUID(orgUUID); err != nil {
		return nil, err
	}

	body, err := json.Marshal(request{Query: orgQuery, Variables: map[string]any{"uuid": orgUUID}})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	var resp response
	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		resp = response{}
		return c.post(ctx, body, &resp)
	})
	if err != nil {
		return nil, unwrapRetryable(ctx, err)
	}

	if len(resp.Errors) > 0 {
		return nil, errors.New(errors.ErrCodeNetwork, "ANET query failed: %s", resp.Errors[0].Message)
	}
	if resp.Data.Organization == nil {
		return nil, errors.New(errors.ErrCodeOrgNotFound, "organization %s not found", orgUUID)
	}
	tree := resp.Data.Organization.Tree()
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

// =============================================================================
// Wire Format
// =============================================================================

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type response struct {
	Data struct {
		Organization *graph.OrgWithDescendants `json:"organization"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// =============================================================================
// Transport
// =============================================================================

func (c *Client) post(ctx context.Context, body []byte, v *response) error {
	hooks := observability.HTTP()
	host, path := c.endpoint.Host, c.endpoint.Path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	hooks.OnRequest(ctx, http.MethodPost, host, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, host, path, err)
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "request to %s failed", host))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, host); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decode response from %s", host)
	}
	return nil
}

func checkStatus(code int, host string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "no GraphQL endpoint at %s", host)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return errors.New(errors.ErrCodeNetwork, "%s rejected credentials: status %d", host, code)
	case httputil.IsTransientStatus(code):
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "%s: status %d", host, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d", host, code)
	}
}

// unwrapRetryable strips the retry marker and maps deadline expiry to a
// timeout.
func unwrapRetryable(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "ANET request timed out")
	}
	if re, ok := err.(*httputil.RetryableError); ok {
		return re.Err
	}
	return err
}

var _ source.Source = (*Client)(nil)
