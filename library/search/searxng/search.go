// Package searxng is a client for the SearXNG JSON search API.
package searxng

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	gutils "github.com/Laisky/go-utils/v6"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"golang.org/x/time/rate"

	"github.com/Laisky/searxng-mcp/library/log"
	"github.com/Laisky/searxng-mcp/library/search"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultLanguage = "en"
	// logBodyLimit caps the number of response bytes logged for debugging.
	logBodyLimit = 4096
	// maxBodyBytes caps how much of a response is read at all.
	maxBodyBytes = 8 << 20
	searchPath   = "/search"
)

// Option configures the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to communicate with SearXNG.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger overrides the default logger used when no contextual logger is present.
func WithLogger(logger logSDK.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds every Search call, rate limiter wait included.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLanguage sets the language tag sent when a request carries none.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if lang := strings.TrimSpace(language); lang != "" {
			c.language = lang
		}
	}
}

// WithRateLimit throttles outgoing requests to perSecond with the given burst.
// A non-positive perSecond disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// Client queries a SearXNG instance and decodes its JSON results.
// It is safe for concurrent use.
type Client struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	language string
	limiter  *rate.Limiter
	logger   logSDK.Logger
}

// NewClient constructs a client for the SearXNG instance at baseURL.
// baseURL must be an absolute http(s) URL, a trailing slash is ignored.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid searxng url %q", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("searxng url %q must use http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, errors.Errorf("searxng url %q has no host", baseURL)
	}

	c := &Client{
		endpoint: trimmed + searchPath,
		timeout:  defaultTimeout,
		language: defaultLanguage,
		logger:   log.Logger.Named("searxng"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.client == nil {
		if c.client, err = gutils.NewHTTPClient(
			gutils.WithHTTPClientTimeout(c.timeout),
		); err != nil {
			return nil, errors.Wrap(err, "new http client")
		}
	}

	return c, nil
}

// Endpoint returns the resolved search URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Search runs one query against SearXNG. A payload without a results field
// decodes to zero results, not an error.
func (c *Client) Search(ctx context.Context, sreq search.Request) (*search.Response, error) {
	query := strings.TrimSpace(sreq.Query)
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}

	logger := c.logger
	if ctxLogger := gmw.GetLogger(ctx); ctxLogger != nil {
		logger = ctxLogger.Named("searxng")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "wait for searxng rate limiter")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create searxng request")
	}
	req.URL.RawQuery = c.queryParams(query, sreq).Encode()
	req.Header.Set("Accept", "application/json")

	logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("category", string(sreq.Category)),
		zap.Strings("engines", sreq.Engines),
	)

	startAt := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "send searxng request")
	}
	defer gutils.CloseWithLog(resp.Body, logger)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read searxng response body")
	}

	truncatedBody, truncated := truncateForLog(body, logBodyLimit)
	logger.Debug("incoming http response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("searxng returned status %d: %s", resp.StatusCode, truncatedBody)
	}

	payload := new(search.Response)
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, errors.Wrap(err, "unmarshal searxng response")
	}
	if payload.Results == nil {
		payload.Results = []search.Result{}
	}

	return payload, nil
}

func (c *Client) queryParams(query string, sreq search.Request) url.Values {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")

	language := strings.TrimSpace(sreq.Language)
	if language == "" {
		language = c.language
	}
	params.Set("language", language)

	pageNo := sreq.PageNo
	if pageNo < 1 {
		pageNo = 1
	}
	params.Set("pageno", strconv.Itoa(pageNo))

	if sreq.Category != "" {
		params.Set("categories", string(sreq.Category))
	}
	if len(sreq.Engines) > 0 {
		params.Set("engines", strings.Join(sreq.Engines, ","))
	}

	return params
}

// truncateForLog limits the payload logged for debugging and reports whether truncation occurred.
// The cut backs off to a rune boundary so multibyte text stays valid UTF-8.
func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]), true
}
