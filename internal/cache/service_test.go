package cache

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var errBoom = errors.New("boom")

type memItem struct {
	value     []byte
	expiresAt time.Time
}

// memTier: уровень кэша в памяти с ручными часами и переключаемыми сбоями.
type memTier struct {
	mu    sync.Mutex
	items map[string]memItem
	now   func() time.Time

	failGet  atomic.Bool
	failSet  atomic.Bool
	failPing atomic.Bool
	calls    atomic.Int32
}

var _ ports.IDistributedCache = (*memTier)(nil)

func newMemTier(now func() time.Time) *memTier {
	if now == nil {
		now = time.Now
	}
	return &memTier{items: make(map[string]memItem), now: now}
}

func (m *memTier) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.calls.Add(1)
	if m.failGet.Load() {
		return nil, false, errBoom
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	if !ok || !m.now().Before(it.expiresAt) {
		return nil, false, nil
	}
	return it.value, true, nil
}

func (m *memTier) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.calls.Add(1)
	if m.failSet.Load() {
		return errBoom
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memItem{value: value, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *memTier) Delete(_ context.Context, key string) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memTier) Ping(context.Context) error {
	m.calls.Add(1)
	if m.failPing.Load() {
		return errBoom
	}
	return nil
}

func (m *memTier) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testConfig() Config {
	return Config{TTL: time.Minute, Timeout: time.Second, LoadTimeout: 5 * time.Second, WarmConcurrency: 2}
}

// countingLoader считает вызовы и возвращает value.
func countingLoader(calls *atomic.Int32, value string) ports.Loader {
	return func(context.Context, string) ([]byte, error) {
		calls.Add(1)
		return []byte(value), nil
	}
}

func TestService_Unconfigured_FallbackOnly(t *testing.T) {
	local := newMemTier(nil)
	s := New(nil, local, testConfig(), newTestLogger())

	assert.False(t, s.IsConfigured())
	h := s.HealthCheck(context.Background())
	assert.Equal(t, domain.CacheHealthy, h.Status)
	assert.Equal(t, domain.TierFallback, h.Tier)
	assert.False(t, h.Configured)

	var calls atomic.Int32
	v, hit, err := s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "v1"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "v1", string(v))

	v, hit, err = s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "v2"))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v1", string(v))
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, local.has("k"))
}

func TestService_Stampede_SingleComputation(t *testing.T) {
	s := New(newMemTier(nil), newMemTier(nil), testConfig(), newTestLogger())

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context, string) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("score"), nil
	}

	const n = 50
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := s.GetOrLoad(context.Background(), "SPY", load)
			results[i], errs[i] = string(v), err
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "расчёт на ключ должен быть один")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "score", results[i])
	}
}

func TestService_EntriesExpire(t *testing.T) {
	c := &clock{now: time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC)}
	remote := newMemTier(c.Now)
	s := New(remote, newMemTier(c.Now), testConfig(), newTestLogger())

	var calls atomic.Int32
	_, _, err := s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "v"))
	require.NoError(t, err)

	c.Advance(59 * time.Second)
	_, hit, err := s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "v"))
	require.NoError(t, err)
	assert.True(t, hit)

	c.Advance(2 * time.Second)
	_, hit, err = s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "v"))
	require.NoError(t, err)
	assert.False(t, hit, "после TTL чтение должно быть промахом")
	assert.Equal(t, int32(2), calls.Load())
}

func TestService_WriteThroughToActiveTier(t *testing.T) {
	remote, local := newMemTier(nil), newMemTier(nil)
	s := New(remote, local, testConfig(), newTestLogger())

	var calls atomic.Int32
	_, _, err := s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "v"))
	require.NoError(t, err)

	assert.True(t, remote.has("k"))
	assert.False(t, local.has("k"))
}

func TestService_DistributedHitNotMirrored(t *testing.T) {
	remote, local := newMemTier(nil), newMemTier(nil)
	require.NoError(t, remote.Set(context.Background(), "k", []byte("v"), time.Minute))
	s := New(remote, local, testConfig(), newTestLogger())

	v, found, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", string(v))
	assert.False(t, local.has("k"))
}

func TestService_DistributedFailureDegradesPerOperation(t *testing.T) {
	remote, local := newMemTier(nil), newMemTier(nil)
	s := New(remote, local, testConfig(), newTestLogger())
	remote.failGet.Store(true)
	remote.failSet.Store(true)

	require.NoError(t, s.Set(context.Background(), "k", []byte("v"), 0))
	assert.True(t, local.has("k"), "запись ушла на локальный уровень")

	v, found, err := s.Get(context.Background(), "k")
	require.NoError(t, err, "сбой Redis не поднимается к вызывающему")
	assert.True(t, found)
	assert.Equal(t, "v", string(v))

	// режим не переключается: следующая операция снова пробует Redis
	assert.Equal(t, domain.TierDistributed, s.ActiveTier())
}

func TestService_FallbackFailureIsCacheErrorButRequestSucceeds(t *testing.T) {
	local := newMemTier(nil)
	local.failGet.Store(true)
	s := New(nil, local, testConfig(), newTestLogger())

	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Equal(t, domain.KindCacheTier, domain.KindOf(err))

	var calls atomic.Int32
	v, hit, err := s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "fresh"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "fresh", string(v))
}

func TestService_LoadErrorPropagates(t *testing.T) {
	local := newMemTier(nil)
	s := New(nil, local, testConfig(), newTestLogger())

	_, _, err := s.GetOrLoad(context.Background(), "k", func(context.Context, string) ([]byte, error) {
		return nil, errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, local.has("k"))
}

func TestService_HealthCheck_Unreachable_SwitchesToFallback(t *testing.T) {
	remote, local := newMemTier(nil), newMemTier(nil)
	s := New(remote, local, testConfig(), newTestLogger())

	remote.failPing.Store(true)
	h := s.HealthCheck(context.Background())
	assert.Equal(t, domain.CacheUnreachable, h.Status)
	assert.Equal(t, domain.TierFallback, h.Tier)
	assert.True(t, h.Configured)

	before := remote.calls.Load()
	var calls atomic.Int32
	_, _, err := s.GetOrLoad(context.Background(), "k", countingLoader(&calls, "v"))
	require.NoError(t, err)
	assert.Equal(t, before, remote.calls.Load(), "в режиме fallback-only Redis не вызывается")
	assert.True(t, local.has("k"))

	// следующая успешная проверка возвращает распределённый уровень
	remote.failPing.Store(false)
	h = s.HealthCheck(context.Background())
	assert.Equal(t, domain.CacheHealthy, h.Status)
	assert.Equal(t, domain.TierDistributed, h.Tier)
}

func TestService_HealthCheck_Degraded(t *testing.T) {
	remote := newMemTier(nil)
	remote.failSet.Store(true)
	s := New(remote, newMemTier(nil), testConfig(), newTestLogger())

	h := s.HealthCheck(context.Background())
	assert.Equal(t, domain.CacheDegraded, h.Status)
	assert.Equal(t, domain.TierDistributed, h.Tier)
}

func TestService_Warm_IdempotentAndCountsSuccesses(t *testing.T) {
	c := &clock{now: time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC)}
	remote := newMemTier(c.Now)
	s := New(remote, newMemTier(c.Now), testConfig(), newTestLogger())

	var calls atomic.Int32
	load := func(_ context.Context, key string) ([]byte, error) {
		calls.Add(1)
		if key == "bad" {
			return nil, errBoom
		}
		return []byte(key), nil
	}

	keys := []string{"SPY", "QQQ", "bad", "IWM"}
	assert.Equal(t, 3, s.Warm(context.Background(), keys, load))

	// повторный прогрев продлевает TTL и не падает
	c.Advance(50 * time.Second)
	assert.Equal(t, 3, s.Warm(context.Background(), keys, load))
	assert.Equal(t, int32(8), calls.Load())

	c.Advance(30 * time.Second)
	v, found, err := s.Get(context.Background(), "SPY")
	require.NoError(t, err)
	assert.True(t, found, "TTL должен отсчитываться от последнего прогрева")
	assert.Equal(t, "SPY", string(v))
}

func TestService_CancelledCallerDoesNotAbortWrite(t *testing.T) {
	remote := newMemTier(nil)
	s := New(remote, newMemTier(nil), testConfig(), newTestLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context, _ string) ([]byte, error) {
		close(started)
		<-release
		return []byte("v"), ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := s.GetOrLoad(ctx, "k", load)
		done <- err
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(release)
	assert.Eventually(t, func() bool { return remote.has("k") }, time.Second, 10*time.Millisecond,
		"запись должна завершиться для остальных ожидающих")
}

// отмена прогрева не должна обрывать общий расчёт для запросов, которые к нему присоединились
func TestService_CancelledWarmDoesNotFailWaiters(t *testing.T) {
	remote := newMemTier(nil)
	s := New(remote, newMemTier(nil), testConfig(), newTestLogger())

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context, _ string) ([]byte, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []byte("v"), ctx.Err()
	}

	wctx, cancel := context.WithCancel(context.Background())
	warmed := make(chan int, 1)
	go func() { warmed <- s.Warm(wctx, []string{"k"}, load) }()
	<-started

	type result struct {
		v   []byte
		err error
	}
	waiter := make(chan result, 1)
	go func() {
		v, _, err := s.GetOrLoad(context.Background(), "k", load)
		waiter <- result{v, err}
	}()
	time.Sleep(50 * time.Millisecond) // ожидающий успевает присоединиться к расчёту

	cancel()
	assert.Equal(t, 0, <-warmed, "прерванный прогрев ничего не засчитывает")

	close(release)
	res := <-waiter
	require.NoError(t, res.err)
	assert.Equal(t, "v", string(res.v))
	assert.True(t, remote.has("k"), "общая запись должна завершиться")
	assert.Equal(t, int32(1), calls.Load())
}

func TestService_Warm_CountsOnlyStoredKeys(t *testing.T) {
	local := newMemTier(nil)
	local.failSet.Store(true)
	s := New(nil, local, testConfig(), newTestLogger())

	var calls atomic.Int32
	assert.Equal(t, 0, s.Warm(context.Background(), []string{"SPY", "QQQ"}, countingLoader(&calls, "x")))
	assert.Equal(t, int32(2), calls.Load())

	// запрос всё равно получает посчитанное значение
	v, hit, err := s.GetOrLoad(context.Background(), "SPY", countingLoader(&calls, "x"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "x", string(v))
}

func TestService_Invalidate(t *testing.T) {
	remote, local := newMemTier(nil), newMemTier(nil)
	s := New(remote, local, testConfig(), newTestLogger())
	ctx := context.Background()

	require.NoError(t, remote.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, local.Set(ctx, "k", []byte("v"), time.Minute))

	require.NoError(t, s.Invalidate(ctx, "k"))
	assert.False(t, remote.has("k"))
	assert.False(t, local.has("k"))
}
