package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"segurab-assistant/internal/domain"
)

// Responder produces a response for a user message. Implementations never
// fail: problems are reported as a response with IsError set.
type Responder interface {
	Respond(ctx context.Context, userMessage string) domain.ChatResponse
}

// RandSource is the subset of *rand.Rand used to pick delays and replies.
type RandSource interface {
	IntN(n int) int
	Int64N(n int64) int64
}

type sleepFunc func(ctx context.Context, d time.Duration)

// Client sends user messages to the strategy chosen at construction time.
type Client struct {
	mode      Mode
	responder Responder
}

type settings struct {
	origin     string
	httpClient *http.Client
	logger     *slog.Logger
	sleep      sleepFunc
	rng        RandSource
}

type Option func(*settings)

// WithOrigin sets the base URL a relative endpoint is resolved against.
func WithOrigin(origin string) Option {
	return func(s *settings) {
		s.origin = strings.TrimSpace(origin)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *settings) {
		s.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithSleep replaces the simulated latency wait.
func WithSleep(fn func(ctx context.Context, d time.Duration)) Option {
	return func(s *settings) {
		s.sleep = fn
	}
}

func WithRand(rng RandSource) Option {
	return func(s *settings) {
		s.rng = rng
	}
}

// New builds a Client for cfg.Mode.
func New(cfg Config, opts ...Option) (*Client, error) {
	s := settings{
		origin:     DefaultOrigin,
		httpClient: &http.Client{},
		logger:     slog.Default(),
		sleep:      sleepContext,
		rng:        globalRand{},
	}
	for _, opt := range opts {
		opt(&s)
	}

	var r Responder
	switch cfg.Mode {
	case ModeMock:
		r = &mockResponder{replies: domain.CannedReplies, sleep: s.sleep, rng: s.rng}
	case ModeAPI:
		endpoint, err := resolveEndpoint(s.origin, cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		r = &apiResponder{endpoint: endpoint, httpClient: s.httpClient, logger: s.logger}
	default:
		return nil, fmt.Errorf("agent: unknown mode %q", cfg.Mode)
	}
	return &Client{mode: cfg.Mode, responder: r}, nil
}

func (c *Client) Mode() Mode {
	return c.mode
}

// Send returns the response for userMessage. It never fails.
func (c *Client) Send(ctx context.Context, userMessage string) domain.ChatResponse {
	return c.responder.Respond(ctx, userMessage)
}

func resolveEndpoint(origin, endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", errors.New("agent: endpoint must not be empty")
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("agent: parse endpoint: %w", err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("agent: parse origin: %w", err)
	}
	if !base.IsAbs() {
		return "", fmt.Errorf("agent: origin %q must be an absolute URL", origin)
	}
	return base.ResolveReference(ref).String(), nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

type globalRand struct{}

func (globalRand) IntN(n int) int       { return rand.IntN(n) }
func (globalRand) Int64N(n int64) int64 { return rand.Int64N(n) }
