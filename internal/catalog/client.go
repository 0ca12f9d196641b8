package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"giphyexplorer/internal/config"
	"giphyexplorer/internal/metrics"

	"golang.org/x/time/rate"
)

const (
	// Search and trending always ask the catalog for general-audience content in English.
	contentRating = "g"
	language      = "en"

	maxErrorBody = 64 << 10
)

// Messages reported when the catalog fails without saying why.
const (
	SearchFailure = "Error fetching GIFs from GIPHY"
	LookupFailure = "Error fetching GIF from GIPHY"
)

// Catalog is the read-only view of the external GIF catalog.
type Catalog interface {
	Search(ctx context.Context, query string, limit, offset int) (*Page, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Trending(ctx context.Context, limit, offset int) (*Page, error)
}

// UpstreamError is any failure talking to the catalog. Message is safe to
// show to clients: either what the catalog said or a generic fallback.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog HTTP %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("catalog: %s: %v", e.Message, e.Err)
	}
	return "catalog: " + e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call gave up on its deadline.
func (e *UpstreamError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// GiphyClient handles catalog requests with a bounded timeout and rate limiting
type GiphyClient struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a catalog client from the GIPHY settings in cfg
func NewClient(cfg *config.Config, logger *slog.Logger) *GiphyClient {
	if logger == nil {
		logger = slog.Default()
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.CatalogRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.CatalogRPS), max(cfg.CatalogBurst, 1))
	}
	return &GiphyClient{
		baseURL:     cfg.GiphyAPIURL,
		apiKey:      cfg.GiphyAPIKey,
		timeout:     cfg.CatalogTimeout,
		rateLimiter: limiter,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: cfg.CatalogTimeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Search queries the catalog's /search endpoint
func (c *GiphyClient) Search(ctx context.Context, query string, limit, offset int) (*Page, error) {
	params := listParams(limit, offset)
	params.Set("q", query)

	var page Page
	if err := c.doRequest(ctx, "search", "/search", params, &page, SearchFailure); err != nil {
		return nil, err
	}
	return &page, nil
}

// Trending queries the catalog's dedicated /trending endpoint
func (c *GiphyClient) Trending(ctx context.Context, limit, offset int) (*Page, error) {
	var page Page
	if err := c.doRequest(ctx, "trending", "/trending", listParams(limit, offset), &page, SearchFailure); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetByID fetches a single GIF
func (c *GiphyClient) GetByID(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := c.doRequest(ctx, "get", "/"+url.PathEscape(id), url.Values{}, &item, LookupFailure); err != nil {
		return nil, err
	}
	return &item, nil
}

func listParams(limit, offset int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("rating", contentRating)
	params.Set("lang", language)
	return params
}

// doRequest performs one GET against the catalog and decodes the JSON body into result.
// Every failure comes back as *UpstreamError.
func (c *GiphyClient) doRequest(ctx context.Context, operation, endpoint string, params url.Values, result any, fallback string) (err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.ObserveCatalogCall(operation, outcome, time.Since(start))
	}()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return &UpstreamError{Message: fallback, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &UpstreamError{Message: fallback, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "GiphyExplorer/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		c.logger.Warn("catalog_request_failed", "operation", operation, "error", err)
		return &UpstreamError{Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := upstreamMessage(body, fallback)
		c.logger.Warn("catalog_http_error", "operation", operation, "status", resp.StatusCode, "message", message)
		return &UpstreamError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &UpstreamError{Message: fallback, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// upstreamMessage extracts the catalog's own error message when it sent one.
func upstreamMessage(body []byte, fallback string) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	if parsed.Meta.Msg != "" {
		return parsed.Meta.Msg
	}
	return fallback
}
