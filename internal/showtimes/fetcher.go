package showtimes

import (
	"context"
	"fmt"
	"time"

	"github.com/ihor-shnaider2/cinema-api/internal/shared/config"
	"github.com/ihor-shnaider2/cinema-api/pkg/logger"

	"github.com/bjaus/breaker"
	"github.com/bjaus/retry"
)

// Fetcher coordinates reads of the showtime document. Fresh reads come
// straight from the snapshot store; on a cache miss it guarantees at most one
// in-flight upstream call across any number of concurrent callers, and falls
// back to the last-known-good snapshot when the upstream is down.
type Fetcher struct {
	client  Client
	store   *SnapshotStore
	circuit *breaker.Circuit
	policy  *retry.Policy

	feedURL string
	ttl     time.Duration

	// refreshGate is the single process-wide refresh gate: capacity-1, so
	// exactly one caller drives a refresh while the rest wait (cancellably)
	// or are served by its outcome.
	refreshGate chan struct{}

	now func() time.Time
	log *logger.Logger
}

// NewFetcher wires the fetcher with its circuit breaker and retry policy.
// The refresh gate is owned by the instance; sharing a Fetcher shares the
// stampede protection, constructing a second one does not.
func NewFetcher(client Client, cfg config.UpstreamConfig, log *logger.Logger) *Fetcher {
	circuit := breaker.New("showtime-feed",
		breaker.WithFailureThreshold(cfg.BreakerThreshold),
		breaker.WithOpenDuration(cfg.BreakerOpenFor),
		// One trial call decides recovery: success closes the circuit,
		// failure re-opens it for another full open duration.
		breaker.WithSuccessThreshold(1),
		breaker.WithHalfOpenRequests(1),
		breaker.OnStateChange(func(name string, from, to breaker.State) {
			log.LogBreakerStateChange(name, from.String(), to.String())
		}),
	)

	policy := retry.New(
		retry.WithMaxAttempts(cfg.RetryAttempts),
		retry.WithBackoff(exponentialBackoff(cfg.BackoffBase)),
	)

	return &Fetcher{
		client:      client,
		store:       NewSnapshotStore(),
		circuit:     circuit,
		policy:      policy,
		feedURL:     cfg.URL,
		ttl:         cfg.CacheTTL,
		refreshGate: make(chan struct{}, 1),
		now:         time.Now,
		log:         log,
	}
}

// GetShowtime returns the current showtime document. Upstream failures never
// escape: the result is either a document (fresh or stale) or ErrNoShowtime.
// A context error is returned only when the caller itself is cancelled.
func (f *Fetcher) GetShowtime(ctx context.Context) (*Showtime, error) {
	// Fast path: no synchronization beyond the store's atomic read.
	if f.store.IsFresh(f.now(), f.ttl) {
		return f.store.Read().Document, nil
	}

	select {
	case f.refreshGate <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-f.refreshGate }()

	// Another caller may have completed a refresh while we waited on the
	// gate; if so, serve its result without touching the upstream.
	if f.store.IsFresh(f.now(), f.ttl) {
		return f.store.Read().Document, nil
	}

	doc, err := f.refresh(ctx)
	if err == nil {
		return doc, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Stale-while-revalidate: the refresh failed, serve whatever we have.
	snap := f.store.Read()
	if snap.Document != nil {
		f.log.LogStaleFallback(ctx, snap.Age(f.now()), err)
		return snap.Document, nil
	}
	return nil, ErrNoShowtime
}

// refresh performs one gated refresh: bounded retries around the
// breaker-wrapped upstream call, storing the document on success.
func (f *Fetcher) refresh(ctx context.Context) (*Showtime, error) {
	var doc *Showtime

	err := f.policy.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		fetched, fetchErr := breaker.Run(ctx, f.circuit, func(ctx context.Context) (*Showtime, error) {
			return f.client.FetchShowtime(ctx)
		})
		if !breaker.IsOpen(fetchErr) {
			f.log.LogUpstreamFetch(ctx, f.feedURL, time.Since(start), fetchErr)
		}
		if fetchErr != nil {
			return fetchErr
		}
		doc = fetched
		return nil
	},
		// An open circuit fails fast: no upstream call was made and there
		// is nothing to wait for. Everything else is transient, 404s and
		// malformed payloads included.
		retry.If(func(err error) bool {
			return !breaker.IsOpen(err) && IsTransient(err)
		}),
		retry.OnRetry(func(ctx context.Context, attempt int, err error, delay time.Duration) {
			f.log.LogUpstreamRetry(ctx, attempt, delay, err)
		}),
	)
	if err != nil {
		if breaker.IsOpen(err) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	f.store.Write(doc, f.now())
	return doc, nil
}

// Snapshot exposes the current snapshot for health reporting.
func (f *Fetcher) Snapshot() Snapshot {
	return f.store.Read()
}

// BreakerState exposes the circuit state for health reporting.
func (f *Fetcher) BreakerState() string {
	return f.circuit.State().String()
}
