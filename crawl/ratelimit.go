package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/schemadoc"
	"golang.org/x/time/rate"
)

var _ schemadoc.Fetcher = (*LimitedFetcher)(nil)

// DomainLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter with a burst of 1.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the limit allows a request to host.
// It returns an error if ctx is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// LimitedFetcher waits on a DomainLimiter before every fetch.
// The fixed pacing delays of a run are a floor; the limiter is a ceiling
// that holds even when the delays are configured to zero.
type LimitedFetcher struct {
	fetcher schemadoc.Fetcher
	limiter *DomainLimiter
}

// NewLimitedFetcher wraps f so that requests to one host never exceed the
// limiter's rate.
func NewLimitedFetcher(f schemadoc.Fetcher, limiter *DomainLimiter) *LimitedFetcher {
	return &LimitedFetcher{fetcher: f, limiter: limiter}
}

// Fetch waits for the host's limiter and then delegates.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", schemadoc.Errorf(schemadoc.EINVALID, "invalid URL %q", rawURL)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return "", err
	}
	return f.fetcher.Fetch(ctx, rawURL)
}

// Close closes the wrapped fetcher.
func (f *LimitedFetcher) Close() error {
	return f.fetcher.Close()
}
