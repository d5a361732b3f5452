package fplconfig

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"fpl-insights-service/internal/bootstrapcache"
	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/metrics"
)

type stubSource struct {
	calls   int32
	payload *domain.Bootstrap
	err     error
}

func (s *stubSource) Get(ctx context.Context, opts bootstrapcache.Options) (bootstrapcache.Result, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return bootstrapcache.Result{}, s.err
	}
	return bootstrapcache.Result{Payload: s.payload, FetchedAt: time.Now()}, nil
}

func (s *stubSource) callCount() int { return int(atomic.LoadInt32(&s.calls)) }

type memStore struct {
	snap    *Snapshot
	loadErr error
	saves   int
}

func (m *memStore) Load(_ context.Context) (*Snapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.snap, nil
}

func (m *memStore) Save(_ context.Context, snap Snapshot) error {
	m.snap = &snap
	m.saves++
	return nil
}

func newTestResolver(source BootstrapSource, store Store) *Resolver {
	return NewResolver(source, store, Config{TTL: 30 * time.Minute}, nil, metrics.NewRecorder())
}

func TestBundleLiveProjectionPersists(t *testing.T) {
	source := &stubSource{payload: samplePayload()}
	store := &memStore{}
	r := newTestResolver(source, store)

	bundle := r.Bundle(context.Background(), false)
	if bundle.IsFallback {
		t.Fatalf("live bundle must not be fallback")
	}
	if len(bundle.Teams) != 2 {
		t.Fatalf("expected projected teams, got %+v", bundle.Teams)
	}
	if store.saves != 1 {
		t.Fatalf("expected bundle persisted, saves=%d", store.saves)
	}

	// Second read is a memory hit.
	r.Bundle(context.Background(), false)
	if source.callCount() != 1 {
		t.Fatalf("expected one source call, got %d", source.callCount())
	}
}

func TestBundleYoungPersistedSkipsNetwork(t *testing.T) {
	at := time.Now().Add(-5 * time.Minute)
	persisted := ProjectBundle(samplePayload(), at)
	source := &stubSource{err: errors.New("must not be called")}
	store := &memStore{snap: &Snapshot{Data: persisted, Timestamp: at}}
	r := newTestResolver(source, store)

	bundle := r.Bundle(context.Background(), false)
	if bundle.IsFallback {
		t.Fatalf("young persisted bundle must not be fallback")
	}
	if source.callCount() != 0 {
		t.Fatalf("expected no network call on young persisted snapshot")
	}
}

func TestBundleExpiredPersistedIsFallbackTier(t *testing.T) {
	at := time.Now().Add(-48 * time.Hour)
	persisted := ProjectBundle(samplePayload(), at)
	source := &stubSource{err: errors.New("upstream down")}
	store := &memStore{snap: &Snapshot{Data: persisted, Timestamp: at}}
	r := newTestResolver(source, store)

	bundle := r.Bundle(context.Background(), false)
	if !bundle.IsFallback {
		t.Fatalf("expired persisted bundle must be tagged fallback")
	}
	if len(bundle.Teams) != 2 {
		t.Fatalf("expected persisted data served, got %+v", bundle.Teams)
	}
}

func TestBundleHardcodedFallback(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	r := newTestResolver(source, nil)

	bundle := r.Bundle(context.Background(), false)
	if !bundle.IsFallback {
		t.Fatalf("expected fallback bundle")
	}
	if bundle.GameRules.SquadSize != 15 || bundle.GameRules.BudgetLimit != 100.0 {
		t.Fatalf("expected default rules, got %+v", bundle.GameRules)
	}
	if bundle.Teams == nil {
		t.Fatalf("teams must be an empty map, never nil")
	}
}

func TestAccessorsDegradeToDefaults(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	r := newTestResolver(source, nil)
	ctx := context.Background()

	positions := r.Positions(ctx, false)
	if positions["MID"].Name != "Midfielders" {
		t.Fatalf("expected default positions, got %+v", positions)
	}
	limits := r.PositionLimits(ctx, false)
	if limits["DEF"].Max != 5 {
		t.Fatalf("expected default limits, got %+v", limits)
	}
	teams := r.Teams(ctx, false)
	if teams == nil || len(teams) != 0 {
		t.Fatalf("expected empty team map, got %v", teams)
	}
	rules := r.GameRules(ctx, false)
	if rules.TransferCost != 4 {
		t.Fatalf("expected default rules, got %+v", rules)
	}
}

func TestCurrentGameweek(t *testing.T) {
	source := &stubSource{payload: samplePayload()}
	r := newTestResolver(source, nil)

	event := r.CurrentGameweek(context.Background(), false)
	if event == nil || event.ID != 7 {
		t.Fatalf("expected gameweek 7, got %+v", event)
	}
}

func TestCurrentGameweekNilOnFailure(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	r := newTestResolver(source, nil)

	if event := r.CurrentGameweek(context.Background(), false); event != nil {
		t.Fatalf("expected nil on failure, got %+v", event)
	}
}

func TestCurrentGameweekNilWhenSeasonInactive(t *testing.T) {
	payload := samplePayload()
	payload.Events = []domain.Event{{ID: 38, IsPrevious: true}}
	source := &stubSource{payload: payload}
	r := newTestResolver(source, nil)

	if event := r.CurrentGameweek(context.Background(), false); event != nil {
		t.Fatalf("expected nil when no current or next event, got %+v", event)
	}
}

func TestInvalidateDropsBundle(t *testing.T) {
	source := &stubSource{payload: samplePayload()}
	r := newTestResolver(source, nil)

	r.Bundle(context.Background(), false)
	r.Invalidate()
	if st := r.Status(); st.Loaded {
		t.Fatalf("expected status unloaded after invalidate")
	}

	r.Bundle(context.Background(), false)
	if source.callCount() != 2 {
		t.Fatalf("expected re-resolution after invalidate, got %d calls", source.callCount())
	}
}

func TestBundleRecoversAfterHardcodedFallback(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	r := newTestResolver(source, nil)
	ctx := context.Background()

	bundle := r.Bundle(ctx, false)
	if !bundle.IsFallback {
		t.Fatalf("expected fallback while upstream is down")
	}

	// Upstream recovers; the very next read must retry instead of serving
	// the pinned defaults for a TTL.
	source.err = nil
	source.payload = samplePayload()

	bundle = r.Bundle(ctx, false)
	if bundle.IsFallback {
		t.Fatalf("expected live bundle after recovery, got fallback")
	}
	if len(bundle.Teams) != 2 {
		t.Fatalf("expected projected teams after recovery, got %d", len(bundle.Teams))
	}
	if source.callCount() != 2 {
		t.Fatalf("expected upstream re-consulted after recovery, got %d calls", source.callCount())
	}

	// The recovered bundle is cached normally again.
	r.Bundle(ctx, false)
	if source.callCount() != 2 {
		t.Fatalf("expected memory hit after recovery, got %d calls", source.callCount())
	}
}

func TestStatusReflectsFallback(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	r := newTestResolver(source, nil)

	r.Bundle(context.Background(), false)
	st := r.Status()
	if !st.Loaded || !st.IsFallback {
		t.Fatalf("expected loaded fallback status, got %+v", st)
	}
}
