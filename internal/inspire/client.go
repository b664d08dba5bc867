// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspire pages through the INSPIRE-HEP literature search API and
// maps its records to publications.
package inspire

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/inspire-ris/internal/httputil"
	"github.com/pdiddy/inspire-ris/internal/logging"
	"github.com/pdiddy/inspire-ris/pkg/types"
)

const (
	// DefaultBaseURL is the INSPIRE REST API root.
	DefaultBaseURL = "https://inspirehep.net/api"

	// DefaultPageSize is the number of records requested per page.
	DefaultPageSize = 25

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// maxRateLimitRetries bounds how many 429 responses a single page waits out.
	maxRateLimitRetries = 5
)

// Client queries the INSPIRE literature endpoint.
type Client struct {
	doer      httputil.Doer
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithDoer substitutes the HTTP client, e.g. a test double.
func WithDoer(d httputil.Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithBaseURL points the client at another API root (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit paces requests to perSecond. Zero or less disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		c.limiter = newLimiter(perSecond)
	}
}

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// NewClient creates a client from cfg, then applies opts.
func NewClient(cfg types.FetchConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		doer:      &http.Client{Timeout: timeout},
		baseURL:   DefaultBaseURL,
		userAgent: cfg.UserAgent,
		limiter:   newLimiter(cfg.RateLimit),
	}
	if cfg.BaseURL != "" {
		c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch runs q against the literature endpoint and returns every hit across
// all result pages, in server order. Paging starts at 1 and stops when a
// page comes back empty or short, or the response has no next link.
//
// A record returned on more than one page is kept once.
// Any failed page aborts the whole fetch; hits from earlier pages are
// discarded.
func (c *Client) Fetch(ctx context.Context, q string, pageSize int) ([]Hit, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []Hit
	nofPages := -1
	for page := 1; ; page++ {
		resp, err := c.fetchPage(ctx, q, pageSize, page)
		if err != nil {
			return nil, err
		}

		if nofPages < 0 {
			nofPages = int(math.Ceil(float64(resp.Hits.Total) / float64(pageSize)))
			logging.Debug(ctx, "found hits", zap.Int("total", resp.Hits.Total))
		}

		hits := resp.Hits.Hits
		logging.Debug(ctx, "fetched page",
			zap.Int("items", len(hits)),
			zap.String("ordinal", Ordinal(page)),
			zap.Int("pages", nofPages))
		all = append(all, hits...)

		if len(hits) == 0 || len(hits) < pageSize || resp.Links.Next == "" {
			break
		}
	}

	deduped, removed := deduplicate(all)
	if removed > 0 {
		logging.Debug(ctx, "dropped records repeated across pages", zap.Int("duplicates", removed))
	}
	return deduped, nil
}

// deduplicate drops hits whose record ID was already seen, keeping the
// first occurrence. Pages are fetched independently, so a record can shift
// across a page boundary while paging. Hits without an ID are kept.
func deduplicate(hits []Hit) ([]Hit, int) {
	seen := make(map[string]struct{}, len(hits))
	deduped := make([]Hit, 0, len(hits))
	removed := 0
	for _, h := range hits {
		id := h.ID.String()
		if id == "" {
			deduped = append(deduped, h)
			continue
		}
		if _, ok := seen[id]; ok {
			removed++
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, h)
	}
	return deduped, removed
}

// PageURL returns the request URL for one result page.
func (c *Client) PageURL(q string, pageSize, page int) string {
	params := url.Values{
		"q":      {q},
		"size":   {strconv.Itoa(pageSize)},
		"page":   {strconv.Itoa(page)},
		"format": {"json"},
		"sort":   {"mostrecent"},
	}
	return c.baseURL + "/literature?" + params.Encode()
}

func (c *Client) fetchPage(ctx context.Context, q string, pageSize, page int) (*searchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: waiting for rate limiter: %v", types.ErrNetwork, err)
	}

	reqURL := c.PageURL(q, pageSize, page)
	logging.Debug(ctx, "trying URL", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.doer, req, maxRateLimitRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: INSPIRE API request: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: INSPIRE API returned HTTP %d for %s", types.ErrNetwork, resp.StatusCode, reqURL)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decoding INSPIRE response: %v", types.ErrParse, err)
	}
	return &sr, nil
}

// Ordinal formats n as an English ordinal: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	s := strconv.Itoa(n)
	if n%100 >= 11 && n%100 <= 13 {
		return s + "th"
	}
	switch n % 10 {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	}
	return s + "th"
}
