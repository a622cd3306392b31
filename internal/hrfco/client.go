package hrfco

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/hydroseo/hrfco-mcp/internal/config"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

// Upstream error codes documented by the HRFCO API. Any other non-zero code
// is surfaced as an api error with the code attached.
const (
	CodeInvalidStation = "920"
	CodeInvalidDate    = "930"
)

// Client talks to the upstream HRFCO API. Every fetch goes through the TTL
// cache first; misses acquire a permit from the concurrency gate before
// dispatch, so at most MaxConcurrent requests are in flight at once.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *TTLCache
	gate    *semaphore.Weighted
	limiter *rate.Limiter
	log     *logging.Logger
}

// NewClient wires a client from config. The cache is owned by the caller so
// tests and the dispatcher can observe it.
func NewClient(cfg config.UpstreamConfig, cache *TTLCache, log *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		cache:   cache,
		gate:    semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.MaxConcurrent),
		log:     log.Sub("upstream"),
	}
}

// Cache exposes the client's cache for stats reporting.
func (c *Client) Cache() *TTLCache { return c.cache }

// Close releases idle upstream connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// infoURL composes the station catalog URL for a category.
func (c *Client) infoURL(cat Category) string {
	return fmt.Sprintf("%s/%s/%s/info.json", c.baseURL, c.apiKey, cat.PathSegment())
}

// listURL composes a time-series URL. The station code, when present, is
// appended positionally before the timestamp pair; the pair is omitted
// entirely unless both endpoints are set.
func (c *Client) listURL(cat Category, g Granularity, code StationCode, rng *DateRange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s/%s/list/%s", c.baseURL, c.apiKey, cat.PathSegment(), g)
	if code != "" {
		b.WriteString("/")
		b.WriteString(code.String())
		if rng != nil && rng.Start != "" && rng.End != "" {
			fmt.Fprintf(&b, "/%s/%s", rng.Start, rng.End)
		}
	}
	b.WriteString(".json")
	return b.String()
}

// FetchInfo retrieves the station catalog payload for a category.
func (c *Client) FetchInfo(ctx context.Context, cat Category) (map[string]any, error) {
	return c.fetch(ctx, c.infoURL(cat))
}

// FetchSeries retrieves a time-series payload. code may be empty to query
// every station; rng may be nil for the upstream's implicit recent window.
func (c *Client) FetchSeries(ctx context.Context, cat Category, g Granularity, code StationCode, rng *DateRange) (map[string]any, error) {
	return c.fetch(ctx, c.listURL(cat, g, code, rng))
}

// fetch performs a cache-fronted GET. Cache hits short-circuit before the
// gate; only payloads with a recognizable content container are cached, so
// upstream errors are never negatively cached.
func (c *Client) fetch(ctx context.Context, url string) (map[string]any, error) {
	if payload, ok := c.cache.Get(url); ok {
		c.log.Debug().Str("url", redactKey(url, c.apiKey)).Msg("cache hit")
		return payload, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.gate.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Internalf("building request: %v", err)
	}

	c.log.Debug().Str("url", redactKey(url, c.apiKey)).Msg("fetching upstream")
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, APIError("", err, "upstream request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, APIError("", err, "reading upstream response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, APIError("", nil, "upstream returned HTTP %d", resp.StatusCode)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, APIError("", err, "upstream returned a non-JSON body")
	}

	payload, err := normalizePayload(decoded)
	if err != nil {
		return nil, err
	}

	if _, ok := payload["content"]; ok {
		c.cache.Set(url, payload)
	} else {
		c.log.Warn().Str("url", redactKey(url, c.apiKey)).Msg("payload lacks content container; not caching")
	}
	return payload, nil
}

// normalizePayload wraps bare list responses as {content: list} so every
// downstream consumer can rely on the container being present, and maps
// upstream error codes to api errors.
func normalizePayload(decoded any) (map[string]any, error) {
	switch v := decoded.(type) {
	case []any:
		return map[string]any{"content": v}, nil
	case map[string]any:
		if code := upstreamCode(v); code != "" {
			return nil, APIError(code, nil, "upstream error: %s", describeCode(code))
		}
		return v, nil
	default:
		return nil, APIError("", nil, "unexpected upstream payload shape %T", decoded)
	}
}

// upstreamCode extracts a non-zero error code from a payload, tolerating
// both string and numeric encodings.
func upstreamCode(payload map[string]any) string {
	raw, ok := payload["code"]
	if !ok {
		return ""
	}
	var code string
	switch v := raw.(type) {
	case string:
		code = v
	case float64:
		code = fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
	if code == "" || code == "0" {
		return ""
	}
	return code
}

func describeCode(code string) string {
	switch code {
	case CodeInvalidStation:
		return "invalid station code"
	case CodeInvalidDate:
		return "invalid date format"
	default:
		return "code " + code
	}
}

// redactKey hides the API credential in logged URLs.
func redactKey(url, key string) string {
	if key == "" {
		return url
	}
	return strings.Replace(url, key, "***", 1)
}
