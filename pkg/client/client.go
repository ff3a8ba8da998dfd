// Package client talks to the graph server that feeds the viewer.
//
// Two calls matter: [Client.FetchGraph] loads the data set once at mount,
// and [Client.OpenNode] fires the node-open event when a node is clicked.
// Graph responses go through a [cache.Cache] so that a restarted viewer
// comes up even while the server is still warming.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/spiderweb/pkg/buildinfo"
	"github.com/matzehuels/spiderweb/pkg/cache"
	errs "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/httputil"
	"github.com/matzehuels/spiderweb/pkg/observability"
)

// DefaultBaseURL is where the graph server listens unless configured otherwise.
const DefaultBaseURL = "http://127.0.0.1:7462/v1"

const (
	httpTimeout = 10 * time.Second
	defaultTTL  = 5 * time.Minute
)

// Client is a graph server client. The zero value is not usable; call [New].
type Client struct {
	base     string
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCache stores graph responses in ch for ttl. A ttl of zero keeps
// entries until they are refreshed.
func WithCache(ch cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if ch != nil {
			c.cache = ch
		}
		c.ttl = ttl
	}
}

// WithRetry sets how often transient failures are retried and the initial
// backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// New creates a client for the server at baseURL. An empty baseURL selects
// [DefaultBaseURL].
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: httpTimeout},
		cache:    cache.NewNullCache(),
		ttl:      defaultTTL,
		attempts: 3,
		delay:    200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server root the client was built with.
func (c *Client) BaseURL() string { return c.base }

// FetchGraph loads the graph from GET {base}/graph. Unless refresh is set,
// a cached copy is returned when present. The result is validated before
// it is cached, so a bad payload is never stored.
func (c *Client) FetchGraph(ctx context.Context, refresh bool) (graph.Graph, error) {
	key := cache.GraphKey(c.base)
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if g, err := graph.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	var body []byte
	err := c.do(ctx, http.MethodGet, "/graph", nil, func(resp *http.Response) error {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			return &httputil.RetryableError{Err: err}
		}
		body = buf.Bytes()
		return nil
	})
	if err != nil {
		return graph.Graph{}, err
	}

	g, err := graph.UnmarshalGraph(body)
	if err != nil {
		return graph.Graph{}, err
	}
	if err := graph.Validate(g); err != nil {
		return graph.Graph{}, err
	}
	if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "graph", len(body))
	}
	return g, nil
}

// OpenNode sends POST {base}/document/show {"id": id}.
func (c *Client) OpenNode(ctx context.Context, id int) error {
	payload, err := json.Marshal(struct {
		ID int `json:"id"`
	}{id})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/document/show", payload, nil)
}

// Hello pings GET {base}/hello.
func (c *Client) Hello(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/hello", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, read func(*http.Response) error) error {
	u, err := url.Parse(c.base + path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "server url %q", c.base)
	}
	hooks := observability.HTTP()

	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var body *bytes.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := newRequest(ctx, method, u.String(), body)
		if err != nil {
			return err
		}

		hooks.OnRequest(ctx, method, u.Host, u.Path)
		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			hooks.OnError(ctx, method, u.Host, u.Path, err)
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()
		hooks.OnResponse(ctx, method, u.Host, u.Path, resp.StatusCode, time.Since(start))

		if err := httputil.CheckStatus(resp); err != nil {
			return err
		}
		if read != nil {
			return read(resp)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errs.Wrap(errs.ErrCodeTimeout, err, "%s %s", method, path)
	}
	var se *httputil.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return errs.Wrap(errs.ErrCodeNotFound, err, "%s %s", method, path)
	}
	return errs.Wrap(errs.ErrCodeNetwork, err, "%s %s", method, path)
}

func newRequest(ctx context.Context, method, target string, body *bytes.Reader) (*http.Request, error) {
	var req *http.Request
	var err error
	if body == nil {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, body)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
