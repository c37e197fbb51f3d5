package links

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultProbeTimeout bounds a single external request
	DefaultProbeTimeout = 10 * time.Second
	// DefaultProbeRate is the number of requests started per second
	DefaultProbeRate = 5
	// DefaultProbeConcurrency is the number of requests in flight
	DefaultProbeConcurrency = 4
	// DefaultUserAgent identifies probe requests
	DefaultUserAgent = "docsite-link-checker/1.0"
)

// Prober checks that external URLs answer with a non-error status.
type Prober struct {
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int
	userAgent   string
}

type ProberOption func(*Prober)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) ProberOption {
	return func(p *Prober) {
		p.client = client
	}
}

// WithRate limits requests to perSecond with the given burst. A non-positive
// rate disables the limit.
func WithRate(perSecond float64, burst int) ProberOption {
	return func(p *Prober) {
		if burst < 1 {
			burst = 1
		}
		limit := rate.Limit(perSecond)
		if perSecond <= 0 {
			limit = rate.Inf
		}
		p.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithConcurrency sets the number of requests in flight.
func WithConcurrency(n int) ProberOption {
	return func(p *Prober) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

func WithUserAgent(ua string) ProberOption {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		client:      &http.Client{Timeout: DefaultProbeTimeout},
		limiter:     rate.NewLimiter(rate.Limit(DefaultProbeRate), 1),
		concurrency: DefaultProbeConcurrency,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe requests every link and returns a finding for each one that fails,
// in the order of links. It stops early only when ctx is done.
func (p *Prober) Probe(ctx context.Context, links []Link) ([]Finding, error) {
	results := make([]string, len(links))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, l := range links {
		i, l := i, l
		g.Go(func() error {
			if err := p.limiter.Wait(ctx); err != nil {
				return err
			}
			results[i] = p.check(ctx, l.Target)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("external link probe: %w", err)
	}

	var findings []Finding
	for i, reason := range results {
		if reason == "" {
			continue
		}
		findings = append(findings, Finding{
			Kind:   KindExternal,
			Source: links[i].Source,
			Target: links[i].Target,
			Reason: reason,
		})
	}
	return findings, nil
}

// check returns why target is broken, or "" when it answers.
func (p *Prober) check(ctx context.Context, target string) string {
	status, err := p.do(ctx, http.MethodHead, target)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = p.do(ctx, http.MethodGet, target)
	}
	if err != nil {
		return err.Error()
	}
	if status >= http.StatusBadRequest {
		return fmt.Sprintf("HTTP %d", status)
	}
	return ""
}

func (p *Prober) do(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}
