package pokeapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pokedex-api/internal/domain/pokemon"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
	"github.com/riskibarqy/pokedex-api/internal/platform/resilience"
	"github.com/riskibarqy/pokedex-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://pokeapi.co/api/v2"
	maxBodyBytes   = 4 << 20
)

var errPokeAPITransient = crerr.New("pokeapi transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// RateLimitRPS caps outgoing requests per second; zero disables the limit.
	RateLimitRPS   float64
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

// Client fetches pokemon records from PokeAPI.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	limiter      *rate.Limiter
	logger       *logging.Logger
	breaker      *resilience.Breaker
	flight       resilience.Group[[]byte]
	retryBackoff time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}
	breaker := resilience.NewBreaker(cfg.CircuitBreaker,
		resilience.WithFailurePredicate(isCircuitFailure),
		resilience.WithStateChange(func(from, to resilience.State) {
			logger.Warn("pokeapi circuit breaker state changed", "from", string(from), "to", string(to))
		}),
	)

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   max(cfg.MaxRetries, 0),
		limiter:      limiter,
		logger:       logger,
		breaker:      breaker,
		retryBackoff: time.Second,
	}
}

// FetchPokemon loads one pokemon by numeric id or name. Unknown refs return
// an error wrapping usecase.ErrNotFound.
func (c *Client) FetchPokemon(ctx context.Context, ref string) (pokemon.Pokemon, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return pokemon.Pokemon{}, fmt.Errorf("%w: pokemon id or name is required", usecase.ErrInvalidInput)
	}

	raw, err := c.doGet(ctx, "/pokemon/"+url.PathEscape(ref))
	if err != nil {
		if stderrors.Is(err, errNotFoundStatus) {
			return pokemon.Pokemon{}, fmt.Errorf("%w: pokeapi has no pokemon %q", usecase.ErrNotFound, ref)
		}
		return pokemon.Pokemon{}, fmt.Errorf("fetch pokemon ref=%s: %w", ref, err)
	}

	item, err := ParsePokemon(raw)
	if err != nil {
		return pokemon.Pokemon{}, fmt.Errorf("parse pokemon ref=%s: %w", ref, err)
	}
	return item, nil
}

var errNotFoundStatus = crerr.New("pokeapi resource not found")

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "pokeapi circuit breaker rejected request", "path", path, "state", string(c.breaker.State()))
		return nil, fmt.Errorf("%w: pokeapi is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	raw, _, err := c.flight.Do(path, func() ([]byte, error) {
		raw, reqErr := c.executeRequest(ctx, c.baseURL+path)
		c.breaker.Record(reqErr)
		return raw, reqErr
	})
	if err != nil {
		if isCircuitFailure(err) {
			return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return nil, err
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait for rate limiter: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errPokeAPITransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errPokeAPITransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, errNotFoundStatus
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errPokeAPITransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "pokeapi request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxBodyBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errPokeAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
