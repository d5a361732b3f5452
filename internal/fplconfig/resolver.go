package fplconfig

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"fpl-insights-service/internal/bootstrapcache"
	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/logging"
	"fpl-insights-service/internal/metrics"
)

const (
	// The derived bundle has its own freshness window, deliberately
	// decoupled from the bootstrap cache TTL: configuration data (positions,
	// rules, teams) changes far less often than player stats.
	defaultBundleTTL = 30 * time.Minute

	cacheName = "config"
	bundleKey = "bundle"
)

// BootstrapSource supplies the bootstrap payload, normally the bootstrap
// cache.
type BootstrapSource interface {
	Get(ctx context.Context, opts bootstrapcache.Options) (bootstrapcache.Result, error)
}

// Config controls resolver construction. Zero values take defaults.
type Config struct {
	TTL time.Duration
}

// Resolver derives stable, narrow configuration views from the bootstrap
// payload. Every accessor degrades to a hardcoded default instead of
// propagating an error, so consumers keep functioning when upstream is
// down. A persisted store backs the bundle across restarts.
type Resolver struct {
	source  BootstrapSource
	store   Store
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	mu        sync.RWMutex
	bundle    *Bundle
	fetchedAt time.Time

	group singleflight.Group
}

// NewResolver constructs a Resolver. The store may be nil, disabling the
// persisted tier.
func NewResolver(source BootstrapSource, store Store, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Resolver {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultBundleTTL
	}
	return &Resolver{
		source:  source,
		store:   store,
		ttl:     ttl,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Bundle returns the derived configuration. Resolution order: in-memory
// bundle within TTL, persisted snapshot within TTL (cold start, no network),
// live projection from the bootstrap payload, persisted snapshot of any age
// (IsFallback), hardcoded defaults (IsFallback). It never returns an error.
func (r *Resolver) Bundle(ctx context.Context, forceRefresh bool) Bundle {
	if !forceRefresh {
		if b, ok := r.cached(); ok {
			r.metrics.RecordCacheRead(cacheName, metrics.CacheHit)
			return b
		}
	}

	r.metrics.RecordCacheRead(cacheName, metrics.CacheMiss)

	// Coalesce concurrent resolutions into one pass.
	v, _, _ := r.group.Do(bundleKey, func() (any, error) {
		return r.resolve(ctx, forceRefresh), nil
	})
	return v.(Bundle)
}

// Positions returns the positions-by-code view.
func (r *Resolver) Positions(ctx context.Context, forceRefresh bool) map[string]Position {
	b := r.Bundle(ctx, forceRefresh)
	if len(b.Positions) == 0 {
		return DefaultPositions()
	}
	return b.Positions
}

// PositionLimits returns the squad-composition view.
func (r *Resolver) PositionLimits(ctx context.Context, forceRefresh bool) map[string]PositionLimit {
	b := r.Bundle(ctx, forceRefresh)
	if len(b.PositionLimits) == 0 {
		return DefaultPositionLimits()
	}
	return b.PositionLimits
}

// Teams returns the teams-by-id view. Degraded mode yields an empty map,
// never nil.
func (r *Resolver) Teams(ctx context.Context, forceRefresh bool) map[int]TeamInfo {
	b := r.Bundle(ctx, forceRefresh)
	if b.Teams == nil {
		return map[int]TeamInfo{}
	}
	return b.Teams
}

// GameRules returns the global rule set.
func (r *Resolver) GameRules(ctx context.Context, forceRefresh bool) GameRules {
	return r.Bundle(ctx, forceRefresh).GameRules
}

// CurrentGameweek resolves the active gameweek: the event flagged current,
// else the one flagged next, else nil. Callers must treat nil as "season
// not active". Failures obtaining the payload also yield nil.
func (r *Resolver) CurrentGameweek(ctx context.Context, forceRefresh bool) *domain.Event {
	res, err := r.source.Get(ctx, bootstrapcache.Options{
		ForceRefresh:              forceRefresh,
		AllowStaleWhileRevalidate: true,
	})
	if err != nil {
		logging.Warn(r.logger, "gameweek resolution degraded", "error", err.Error())
		return nil
	}
	if e, ok := res.Payload.CurrentEvent(); ok {
		return &e
	}
	return nil
}

// Status reports the resolver state.
func (r *Resolver) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Status{}
	if r.bundle != nil {
		st.Loaded = true
		st.LastFetch = r.fetchedAt
		st.Valid = r.now().Sub(r.fetchedAt) < r.ttl
		st.IsFallback = r.bundle.IsFallback
	}
	return st
}

// Invalidate drops the in-memory bundle; the next read resolves afresh.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.bundle = nil
	r.fetchedAt = time.Time{}
	r.mu.Unlock()
}

func (r *Resolver) cached() (Bundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.bundle == nil || r.now().Sub(r.fetchedAt) >= r.ttl {
		return Bundle{}, false
	}
	return *r.bundle, true
}

func (r *Resolver) resolve(ctx context.Context, forceRefresh bool) Bundle {
	// Another coalesced caller may have already resolved.
	if !forceRefresh {
		if b, ok := r.cached(); ok {
			return b
		}

		// Cold-start path: a young persisted snapshot avoids any network
		// call.
		if snap := r.loadPersisted(ctx); snap != nil && r.now().Sub(snap.Timestamp) < r.ttl {
			logging.Info(r.logger, "config restored from persisted cache",
				slog.Int64(logging.FieldAgeSeconds, int64(r.now().Sub(snap.Timestamp).Seconds())))
			r.adopt(snap.Data, snap.Timestamp)
			return snap.Data
		}
	}

	res, err := r.source.Get(ctx, bootstrapcache.Options{
		ForceRefresh:              forceRefresh,
		AllowStaleWhileRevalidate: true,
	})
	if err == nil {
		bundle := ProjectBundle(res.Payload, r.now())
		r.adopt(bundle, bundle.LastUpdated)
		r.savePersisted(ctx, bundle)
		return bundle
	}

	// Last-resort tier: a persisted snapshot of any age beats hardcoded
	// defaults.
	if snap := r.loadPersisted(ctx); snap != nil {
		logging.Warn(r.logger, "config falling back to expired persisted cache",
			slog.Int64(logging.FieldAgeSeconds, int64(r.now().Sub(snap.Timestamp).Seconds())),
			"error", err.Error())
		fallback := snap.Data
		fallback.IsFallback = true
		r.adopt(fallback, snap.Timestamp)
		return fallback
	}

	logging.Warn(r.logger, "config falling back to hardcoded defaults", "error", err.Error())
	r.metrics.RecordCacheRead(cacheName, metrics.CacheDegraded)
	fallback := FallbackBundle(r.now())
	// Adopted with a zero timestamp so the slot is already expired: the
	// next read retries upstream instead of pinning defaults for a TTL.
	r.adopt(fallback, time.Time{})
	return fallback
}

func (r *Resolver) adopt(b Bundle, at time.Time) {
	r.mu.Lock()
	r.bundle = &b
	r.fetchedAt = at
	r.mu.Unlock()
}

func (r *Resolver) loadPersisted(ctx context.Context) *Snapshot {
	if r.store == nil {
		return nil
	}
	snap, err := r.store.Load(ctx)
	if err != nil {
		// Absence or corruption is cache-empty, never fatal.
		logging.Warn(r.logger, "persisted config unreadable", "error", err.Error())
		return nil
	}
	return snap
}

func (r *Resolver) savePersisted(ctx context.Context, b Bundle) {
	if r.store == nil {
		return
	}
	snap := Snapshot{Data: b, Timestamp: b.LastUpdated}
	if err := r.store.Save(ctx, snap); err != nil {
		logging.Warn(r.logger, "persisting config failed", "error", err.Error())
	}
}
