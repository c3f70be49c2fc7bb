package summarizer

import (
	"sync"

	"clip-summarize/internal/domain/entity"
)

// Factory builds summarizers from settings and reuses the last one while the
// settings are unchanged, so circuit breaker state survives across runs.
type Factory struct {
	cfg      Config
	baseURLs map[entity.Provider]string
	// build is New; replaced in tests.
	build    func(entity.Settings, Config) (Summarizer, error)

	mu      sync.Mutex
	built   bool
	last    entity.Settings
	current Summarizer
}

// NewFactory creates a Factory that passes cfg to New.
func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg, baseURLs: map[entity.Provider]string{}, build: New}
}

// WithBaseURL overrides the endpoint used for provider. An empty url keeps
// the SDK default.
func (f *Factory) WithBaseURL(provider entity.Provider, url string) *Factory {
	f.mu.Lock()
	defer f.mu.Unlock()
	if url == "" {
		delete(f.baseURLs, provider)
	} else {
		f.baseURLs[provider] = url
	}
	return f
}

// For returns the summarizer for settings.
func (f *Factory) For(settings entity.Settings) (Summarizer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.built && f.last == settings {
		return f.current, nil
	}

	cfg := f.cfg
	if url, ok := f.baseURLs[settings.Provider]; ok {
		cfg.BaseURL = url
	}

	s, err := f.build(settings, cfg)
	if err != nil {
		return nil, err
	}
	f.built = true
	f.last = settings
	f.current = s
	return s, nil
}

// BreakerStatus describes the circuit breaker of the active summarizer.
type BreakerStatus struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Open  bool   `json:"open"`
}

type breakerReporter interface {
	breakerStatus() BreakerStatus
}

// Status returns the breaker status of the current summarizer. ok is false
// when nothing has been built yet or the summarizer has no breaker.
func (f *Factory) Status() (status BreakerStatus, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.current.(breakerReporter)
	if !ok {
		return BreakerStatus{}, false
	}
	return r.breakerStatus(), true
}

func (o *OpenAI) breakerStatus() BreakerStatus {
	return BreakerStatus{
		Name:  o.circuitBreaker.Name(),
		State: o.circuitBreaker.State().String(),
		Open:  o.circuitBreaker.IsOpen(),
	}
}

func (c *Claude) breakerStatus() BreakerStatus {
	return BreakerStatus{
		Name:  c.circuitBreaker.Name(),
		State: c.circuitBreaker.State().String(),
		Open:  c.circuitBreaker.IsOpen(),
	}
}
