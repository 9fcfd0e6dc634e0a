// Package rates provides the USD to KRW exchange rate used to display
// prices in both currencies.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultURL      = "https://api.exchangerate-api.com/v4/latest/USD"
	DefaultTTL      = time.Hour
	DefaultFallback = 1300.0
	DefaultTimeout  = 10 * time.Second
)

// Config holds the configuration for a Provider. Zero values are replaced
// by the defaults above.
type Config struct {
	URL      string
	TTL      time.Duration
	Fallback float64
	Client   *http.Client
	Logger   *slog.Logger
	Clock    func() time.Time
}

// Quote is a rate together with where it came from.
type Quote struct {
	Rate      float64
	Live      bool // false when Rate is the fallback
	FetchedAt time.Time
}

// Provider fetches and caches the USD to KRW rate. It never fails: when the
// remote service cannot be used it answers with the fallback rate, which is
// not cached so the next call retries.
type Provider struct {
	config Config
	group  singleflight.Group

	mu      sync.RWMutex
	cached  *Quote
	lastErr error
}

// New creates a Provider.
func New(config Config) *Provider {
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.Fallback <= 0 {
		config.Fallback = DefaultFallback
	}
	if config.Client == nil {
		config.Client = &http.Client{Timeout: DefaultTimeout}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Provider{config: config}
}

// Rate returns the number of KRW per USD.
func (p *Provider) Rate(ctx context.Context) float64 {
	return p.Quote(ctx).Rate
}

// Quote returns the cached rate while it is fresh and fetches a new one
// otherwise. Concurrent callers share a single request.
func (p *Provider) Quote(ctx context.Context) Quote {
	if q, ok := p.fresh(); ok {
		return q
	}

	v, _, _ := p.group.Do("rate", func() (any, error) {
		if q, ok := p.fresh(); ok {
			return q, nil
		}

		rate, err := p.fetch(ctx)
		now := p.config.Clock()

		p.mu.Lock()
		defer p.mu.Unlock()
		p.lastErr = err
		if err != nil {
			p.config.Logger.Warn("exchange rate unavailable, using fallback",
				"url", p.config.URL, "fallback", p.config.Fallback, "error", err)
			return Quote{Rate: p.config.Fallback, FetchedAt: now}, nil
		}

		q := Quote{Rate: rate, Live: true, FetchedAt: now}
		p.cached = &q
		p.config.Logger.Debug("exchange rate fetched", "rate", rate)
		return q, nil
	})
	return v.(Quote)
}

func (p *Provider) fresh() (Quote, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cached == nil {
		return Quote{}, false
	}
	if p.config.Clock().Sub(p.cached.FetchedAt) >= p.config.TTL {
		return Quote{}, false
	}
	return *p.cached, true
}

type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (p *Provider) fetch(ctx context.Context) (float64, error) {
	var body latestResponse
	if err := jwget(ctx, p.config.Client, p.config.URL, &body); err != nil {
		return 0, err
	}
	rate, ok := body.Rates["KRW"]
	if !ok {
		return 0, errors.New("response has no KRW rate")
	}
	if rate <= 0 {
		return 0, fmt.Errorf("invalid KRW rate %v", rate)
	}
	return rate, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
