package rates

import (
	"time"

	"github.com/aretw0/introspection"
)

// ProviderState exposes internal state for observability.
type ProviderState struct {
	URL       string     `json:"url"`
	TTL       string     `json:"ttl"`
	Fallback  float64    `json:"fallback"`
	Cached    float64    `json:"cached_rate,omitempty"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (p *Provider) State() any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := ProviderState{
		URL:      p.config.URL,
		TTL:      p.config.TTL.String(),
		Fallback: p.config.Fallback,
	}
	if p.cached != nil {
		at := p.cached.FetchedAt
		s.Cached = p.cached.Rate
		s.FetchedAt = &at
	}
	if p.lastErr != nil {
		s.LastError = p.lastErr.Error()
	}
	return s
}

// ComponentType implements introspection.Component.
func (p *Provider) ComponentType() string {
	return "rate-provider"
}

var _ introspection.Introspectable = (*Provider)(nil)
var _ introspection.Component = (*Provider)(nil)
