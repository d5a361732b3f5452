package bootstrapcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/fplclient"
	"fpl-insights-service/internal/metrics"
)

type stubFetcher struct {
	mu      sync.Mutex
	calls   int32
	payload *domain.Bootstrap
	err     error
	block   chan struct{}
	done    chan struct{}
}

func (f *stubFetcher) Bootstrap(ctx context.Context) (*domain.Bootstrap, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	payload, err := f.payload, f.err
	f.mu.Unlock()
	if f.done != nil {
		defer func() { f.done <- struct{}{} }()
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (f *stubFetcher) set(payload *domain.Bootstrap, err error) {
	f.mu.Lock()
	f.payload = payload
	f.err = err
	f.mu.Unlock()
}

func (f *stubFetcher) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func payloadWith(players int) *domain.Bootstrap {
	b := &domain.Bootstrap{Elements: make([]domain.Player, players)}
	for i := range b.Elements {
		b.Elements[i].ID = i + 1
	}
	return b
}

func newTestCache(f Fetcher, ttl time.Duration) *Cache {
	return New(f, Config{TTL: ttl}, nil, metrics.NewRecorder())
}

// waitForPlayers polls the slot until it holds a payload of the wanted
// size, then performs one read. Needed because a background revalidation
// stores the entry shortly after the fetcher returns.
func waitForPlayers(t *testing.T, cache *Cache, want int) Result {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ent := cache.current(); ent != nil && len(ent.payload.Elements) == want {
			res, err := cache.Get(context.Background(), Options{AllowStaleWhileRevalidate: true})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			return res
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d players", want)
	return Result{}
}

func TestGetFreshHitSkipsUpstream(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWith(3)}
	cache := newTestCache(fetcher, time.Minute)

	first, err := cache.Get(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.Get(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.callCount() != 1 {
		t.Fatalf("expected one upstream call, got %d", fetcher.callCount())
	}
	if second.Stale || second.Degraded {
		t.Fatalf("expected fresh result, got %+v", second)
	}
	if !second.FetchedAt.Equal(first.FetchedAt) {
		t.Fatalf("expected same slot, fetchedAt differs")
	}
}

func TestGetColdErrorPreservesKind(t *testing.T) {
	upstream := &fplclient.APIError{Kind: fplclient.KindServerUnavailable, Message: "down"}
	fetcher := &stubFetcher{err: upstream}
	cache := newTestCache(fetcher, time.Minute)

	_, err := cache.Get(context.Background(), Options{})
	if err == nil {
		t.Fatalf("expected error from cold cache")
	}
	if fplclient.KindOf(err) != fplclient.KindServerUnavailable {
		t.Fatalf("expected kind preserved, got %v", err)
	}
}

func TestGetDegradedOnRefreshFailure(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWith(2)}
	cache := newTestCache(fetcher, time.Minute)

	if _, err := cache.Get(context.Background(), Options{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	fetcher.set(nil, errors.New("upstream exploded"))
	res, err := cache.Get(context.Background(), Options{ForceRefresh: true})
	if err != nil {
		t.Fatalf("expected degraded result, got error %v", err)
	}
	if !res.Degraded || !res.Stale {
		t.Fatalf("expected degraded stale result, got %+v", res)
	}
	if res.DegradedReason == "" {
		t.Fatalf("expected degraded reason populated")
	}
	if len(res.Payload.Elements) != 2 {
		t.Fatalf("expected previous payload served")
	}
}

func TestGetCoalescesConcurrentFetches(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWith(1), block: make(chan struct{})}
	cache := newTestCache(fetcher, time.Minute)

	const callers = 10
	var wg sync.WaitGroup
	results := make([]Result, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Get(context.Background(), Options{})
		}(i)
	}

	// Let every caller reach the in-flight fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	if fetcher.callCount() != 1 {
		t.Fatalf("expected one coalesced upstream call, got %d", fetcher.callCount())
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if results[i].Payload == nil {
			t.Fatalf("caller %d got nil payload", i)
		}
	}
}

func TestGetStaleWhileRevalidate(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWith(1), done: make(chan struct{}, 2)}
	cache := newTestCache(fetcher, time.Minute)

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	var mu sync.Mutex
	cache.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	if _, err := cache.Get(context.Background(), Options{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	<-fetcher.done

	// Age the entry past the freshness window.
	mu.Lock()
	current = base.Add(20 * time.Minute)
	mu.Unlock()
	fetcher.set(payloadWith(5), nil)

	res, err := cache.Get(context.Background(), Options{AllowStaleWhileRevalidate: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Stale {
		t.Fatalf("expected stale result served synchronously")
	}
	if len(res.Payload.Elements) != 1 {
		t.Fatalf("expected old payload, got %d players", len(res.Payload.Elements))
	}

	// The background refresh lands the new payload for the next reader.
	<-fetcher.done
	next := waitForPlayers(t, cache, 5)
	if next.Stale {
		t.Fatalf("expected refreshed entry, got stale")
	}
	if fetcher.callCount() != 2 {
		t.Fatalf("expected two upstream calls, got %d", fetcher.callCount())
	}
}

func TestGetStaleWithoutRevalidateBlocks(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWith(1)}
	cache := newTestCache(fetcher, time.Minute)

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	var mu sync.Mutex
	cache.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	if _, err := cache.Get(context.Background(), Options{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	mu.Lock()
	current = base.Add(20 * time.Minute)
	mu.Unlock()

	res, err := cache.Get(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stale {
		t.Fatalf("expected blocking refresh to return fresh result")
	}
	if fetcher.callCount() != 2 {
		t.Fatalf("expected blocking refresh, got %d calls", fetcher.callCount())
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWith(1)}
	cache := newTestCache(fetcher, time.Minute)

	if _, err := cache.Get(context.Background(), Options{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	cache.Invalidate()
	if _, ok := cache.Age(); ok {
		t.Fatalf("expected empty slot after invalidate")
	}

	if _, err := cache.Get(context.Background(), Options{}); err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if fetcher.callCount() != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", fetcher.callCount())
	}
}

func TestCallerAbandonLeavesFetchRunning(t *testing.T) {
	fetcher := &stubFetcher{payload: payloadWith(4), block: make(chan struct{}), done: make(chan struct{}, 1)}
	cache := newTestCache(fetcher, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, Options{})
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}

	// The abandoned fetch still completes and fills the slot.
	close(fetcher.block)
	<-fetcher.done

	res, err := cache.Get(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Payload.Elements) != 4 {
		t.Fatalf("expected abandoned fetch result cached")
	}
	if fetcher.callCount() != 1 {
		t.Fatalf("expected the abandoned fetch to serve the follow-up, got %d calls", fetcher.callCount())
	}
}

func TestStatusTracksFailures(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	cache := newTestCache(fetcher, time.Minute)

	if st := cache.Status(); st.IsReady() {
		t.Fatalf("expected not ready before first success")
	}

	if _, err := cache.Get(context.Background(), Options{}); err == nil {
		t.Fatalf("expected failure")
	}
	st := cache.Status()
	if st.ConsecutiveFailures != 1 || st.LastError == "" {
		t.Fatalf("expected failure recorded, got %+v", st)
	}

	fetcher.set(payloadWith(1), nil)
	if _, err := cache.Get(context.Background(), Options{}); err != nil {
		t.Fatalf("recovery failed: %v", err)
	}
	st = cache.Status()
	if !st.IsReady() || st.ConsecutiveFailures != 0 || !st.HasValue {
		t.Fatalf("expected recovered status, got %+v", st)
	}
}
