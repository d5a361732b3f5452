package bootstrapcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/logging"
	"fpl-insights-service/internal/metrics"
)

const (
	// Freshness window for the single bootstrap slot. The upstream publishes
	// bulk data that rarely changes intra-gameweek, but prices and transfer
	// counts move, so the window stays short.
	defaultTTL = 15 * time.Minute

	// Upper bound on a detached fetch. Must exceed the client's own HTTP
	// timeout so the transport deadline fires first and is classified.
	defaultFetchTimeout = 3 * time.Minute

	slotKey   = "bootstrap"
	cacheName = "bootstrap"
)

// Fetcher retrieves the bootstrap payload from upstream.
type Fetcher interface {
	Bootstrap(ctx context.Context) (*domain.Bootstrap, error)
}

// Options controls one cache read.
type Options struct {
	// ForceRefresh bypasses the slot and performs a blocking fetch.
	ForceRefresh bool
	// AllowStaleWhileRevalidate serves an expired entry immediately and
	// refreshes it in the background for future readers.
	AllowStaleWhileRevalidate bool
}

// Result is one cache read. Degraded marks a value served because a refresh
// failed; Stale marks a value older than the freshness window.
type Result struct {
	Payload        *domain.Bootstrap
	FetchedAt      time.Time
	Stale          bool
	Degraded       bool
	DegradedReason string
}

// Status describes the recent health of the cache slot.
type Status struct {
	HasValue            bool
	FetchedAt           time.Time
	Age                 time.Duration
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the cache can serve data.
func (s Status) IsReady() bool {
	return s.HasValue || !s.LastSuccess.IsZero()
}

type entry struct {
	payload   *domain.Bootstrap
	fetchedAt time.Time
}

// Config controls cache construction. Zero values take defaults.
type Config struct {
	TTL          time.Duration
	FetchTimeout time.Duration
}

// Cache is a single-slot, time-boxed cache of the bootstrap payload with
// stale-while-revalidate semantics and fallback-to-stale on refresh failure.
//
// The revalidation trigger is age-based: a background refresh starts only
// when the entry has outlived the freshness window, not on a fixed delay.
// The slot is replaced atomically; concurrent blocking fetches coalesce into
// one upstream call.
type Cache struct {
	fetcher      Fetcher
	ttl          time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger
	metrics      *metrics.Recorder
	now          func() time.Time

	mu    sync.RWMutex
	entry *entry

	group singleflight.Group

	statusMu sync.RWMutex
	failures int
	lastErr  string
	lastTry  time.Time
	lastOK   time.Time
}

// New constructs a Cache with sane defaults.
func New(fetcher Fetcher, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Cache{
		fetcher:      fetcher,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		logger:       logger,
		metrics:      recorder,
		now:          time.Now,
	}
}

// Get returns the bootstrap payload per the options. Fresh entries are
// served synchronously with no upstream call. Stale entries are served
// immediately with a background refresh when allowed. Otherwise a blocking,
// coalesced fetch runs; on failure any previous value is served degraded,
// and only a cold slot propagates the error.
func (c *Cache) Get(ctx context.Context, opts Options) (Result, error) {
	if !opts.ForceRefresh {
		if ent := c.current(); ent != nil {
			age := c.now().Sub(ent.fetchedAt)
			if age < c.ttl {
				c.metrics.RecordCacheRead(cacheName, metrics.CacheHit)
				return Result{Payload: ent.payload, FetchedAt: ent.fetchedAt}, nil
			}
			if opts.AllowStaleWhileRevalidate {
				c.metrics.RecordCacheRead(cacheName, metrics.CacheStale)
				logging.Info(c.logger, "serving stale bootstrap, revalidating",
					slog.String(logging.FieldCacheState, metrics.CacheStale),
					slog.Int64(logging.FieldAgeSeconds, int64(age.Seconds())))
				c.revalidate()
				return Result{Payload: ent.payload, FetchedAt: ent.fetchedAt, Stale: true}, nil
			}
		}
	}

	c.metrics.RecordCacheRead(cacheName, metrics.CacheMiss)
	return c.refresh(ctx)
}

// Invalidate clears the slot; the next Get performs a blocking fetch
// regardless of flags.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// Age returns how old the cached payload is. The second return is false
// when the slot is empty.
func (c *Cache) Age() (time.Duration, bool) {
	ent := c.current()
	if ent == nil {
		return 0, false
	}
	return c.now().Sub(ent.fetchedAt), true
}

// Status reports the slot state and recent fetch health.
func (c *Cache) Status() Status {
	c.statusMu.RLock()
	st := Status{
		ConsecutiveFailures: c.failures,
		LastError:           c.lastErr,
		LastAttempt:         c.lastTry,
		LastSuccess:         c.lastOK,
	}
	c.statusMu.RUnlock()

	if ent := c.current(); ent != nil {
		st.HasValue = true
		st.FetchedAt = ent.fetchedAt
		st.Age = c.now().Sub(ent.fetchedAt)
	}
	return st
}

// refresh performs a blocking fetch through the singleflight group.
// Concurrent callers share one in-flight upstream call. The fetch itself
// runs detached from the caller context so an abandoned request still
// completes and updates the slot for future readers.
func (c *Cache) refresh(ctx context.Context) (Result, error) {
	ch := c.group.DoChan(slotKey, func() (any, error) {
		return c.fetch()
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if ent := c.current(); ent != nil {
				c.metrics.RecordCacheRead(cacheName, metrics.CacheDegraded)
				logging.Warn(c.logger, "serving degraded bootstrap after fetch failure",
					slog.String(logging.FieldCacheState, metrics.CacheDegraded),
					slog.String("error", res.Err.Error()))
				return Result{
					Payload:        ent.payload,
					FetchedAt:      ent.fetchedAt,
					Stale:          true,
					Degraded:       true,
					DegradedReason: res.Err.Error(),
				}, nil
			}
			return Result{}, res.Err
		}
		ent := res.Val.(*entry)
		return Result{Payload: ent.payload, FetchedAt: ent.fetchedAt}, nil
	}
}

// revalidate starts a fire-and-forget background refresh. Failures are
// logged and swallowed; they never reach the caller that was served the
// stale value. The shared singleflight key means a background refresh can
// never race a blocking one for the slot.
func (c *Cache) revalidate() {
	go func() {
		ch := c.group.DoChan(slotKey, func() (any, error) {
			return c.fetch()
		})
		if res := <-ch; res.Err != nil {
			logging.Warn(c.logger, "background bootstrap refresh failed",
				slog.String("error", res.Err.Error()))
		}
	}()
}

func (c *Cache) fetch() (*entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()

	start := c.now()
	payload, err := c.fetcher.Bootstrap(ctx)
	c.recordAttempt(start, err)
	if err != nil {
		return nil, err
	}

	ent := &entry{payload: payload, fetchedAt: c.now()}
	c.mu.Lock()
	c.entry = ent
	c.mu.Unlock()

	logging.Info(c.logger, "bootstrap refreshed",
		slog.Int(logging.FieldCount, len(payload.Elements)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
	return ent, nil
}

func (c *Cache) current() *entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entry
}

func (c *Cache) recordAttempt(at time.Time, err error) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()

	c.lastTry = at
	if err != nil {
		c.failures++
		c.lastErr = err.Error()
		return
	}
	c.failures = 0
	c.lastErr = ""
	c.lastOK = c.now()
}
