// Package ors implements ports.RouteOptimizer on top of the OpenRouteService
// optimization endpoint, which speaks the VROOM request format.
package ors

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.openrouteservice.org"
	DefaultTimeout      = 10 * time.Second
	DefaultMaxRetries   = 2
	DefaultRatePerSec   = 1.0
	DefaultBurst        = 2
	defaultProfile      = "driving-car"
	defaultInitialDelay = 200 * time.Millisecond
	defaultMaxDelay     = 2 * time.Second
)

// Config holds the client settings. Zero values fall back to the defaults
// above, except APIKey which is required.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
	Burst      int

	// InitialDelay is the first backoff interval between attempts.
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// Optimizer is safe for concurrent use.
type Optimizer struct {
	session      *http.Client
	limiter      *rate.Limiter
	apiKey       string
	baseURL      string
	profile      string
	timeout      time.Duration
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

func NewOptimizer(cfg Config) (*Optimizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		return nil, errors.New("ORS max retries must not be negative")
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = DefaultRatePerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}

	return &Optimizer{
		// Per-attempt deadlines come from the request context.
		session:      &http.Client{},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		profile:      defaultProfile,
		timeout:      cfg.Timeout,
		maxRetries:   cfg.MaxRetries,
		initialDelay: cfg.InitialDelay,
		maxDelay:     cfg.MaxDelay,
	}, nil
}
