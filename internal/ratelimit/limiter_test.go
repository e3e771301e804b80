package ratelimit

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentumRider/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeClock: ручные часы для проверки смены окна.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC)}
}

func newLimiter(clock *fakeClock, global Quota, classes map[Class]Quota) *Limiter {
	return New(global, classes, newTestLogger(), WithClock(clock.Now))
}

func TestAdmit_ExactlyLimitThenDeny(t *testing.T) {
	clock := newClock()
	l := newLimiter(clock, Quota{}, map[Class]Quota{ClassCompute: {Limit: 5, Window: time.Minute}})

	for i := 0; i < 5; i++ {
		d := l.Admit("1.2.3.4", ClassCompute)
		require.True(t, d.Allowed, "запрос %d должен пройти", i+1)
		assert.Zero(t, d.RetryAfter)
	}

	clock.Advance(20 * time.Second)
	d := l.Admit("1.2.3.4", ClassCompute)
	assert.False(t, d.Allowed, "limit+1 запрос должен быть отклонён")
	assert.Equal(t, 40*time.Second, d.RetryAfter)
}

func TestAdmit_ClientsDoNotShareQuota(t *testing.T) {
	clock := newClock()
	l := newLimiter(clock, Quota{Limit: 2, Window: time.Minute}, nil)

	assert.True(t, l.Admit("a", ClassRead).Allowed)
	assert.True(t, l.Admit("a", ClassRead).Allowed)
	assert.False(t, l.Admit("a", ClassRead).Allowed)

	assert.True(t, l.Admit("b", ClassRead).Allowed)
	assert.True(t, l.Admit("b", ClassRead).Allowed)
}

func TestAdmit_WindowRollover(t *testing.T) {
	clock := newClock()
	l := newLimiter(clock, Quota{}, map[Class]Quota{ClassRead: {Limit: 1, Window: time.Minute}})

	require.True(t, l.Admit("a", ClassRead).Allowed)
	require.False(t, l.Admit("a", ClassRead).Allowed)

	clock.Advance(time.Minute)
	assert.True(t, l.Admit("a", ClassRead).Allowed, "после смены окна счётчик сбрасывается")
	assert.False(t, l.Admit("a", ClassRead).Allowed)
}

func TestAdmit_CombinedQuotas(t *testing.T) {
	clock := newClock()
	l := newLimiter(clock, Quota{Limit: 3, Window: time.Minute}, map[Class]Quota{
		ClassRead:    {Limit: 10, Window: time.Minute},
		ClassCompute: {Limit: 1, Window: time.Minute},
	})

	require.True(t, l.Admit("a", ClassCompute).Allowed)
	// квота класса исчерпана: отказ, глобальный счётчик не тратится
	require.False(t, l.Admit("a", ClassCompute).Allowed)
	require.False(t, l.Admit("a", ClassCompute).Allowed)

	assert.True(t, l.Admit("a", ClassRead).Allowed)
	assert.True(t, l.Admit("a", ClassRead).Allowed)
	// глобальная квота (3) исчерпана, хотя у read ещё есть место
	d := l.Admit("a", ClassRead)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)
}

func TestAdmit_RetryAfterIsMaxOfExhaustedWindows(t *testing.T) {
	clock := newClock()
	l := newLimiter(clock, Quota{Limit: 1, Window: time.Minute}, map[Class]Quota{
		ClassCompute: {Limit: 1, Window: 10 * time.Minute},
	})

	require.True(t, l.Admit("a", ClassCompute).Allowed)
	d := l.Admit("a", ClassCompute)
	require.False(t, d.Allowed)
	assert.Equal(t, 10*time.Minute, d.RetryAfter)
}

func TestAdmit_ConcurrentRequestsNeverExceedLimit(t *testing.T) {
	l := New(Quota{}, map[Class]Quota{ClassCompute: {Limit: 10, Window: time.Hour}}, newTestLogger())

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Admit("same-client", ClassCompute).Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), allowed.Load())
}

func TestCheck_ReturnsRateLimitError(t *testing.T) {
	clock := newClock()
	l := newLimiter(clock, Quota{Limit: 1, Window: 30 * time.Second}, nil)

	require.NoError(t, l.Check("a", ClassRead))
	err := l.Check("a", ClassRead)
	require.Error(t, err)

	e, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindRateLimited, e.Kind)
	assert.Equal(t, domain.CodeRateLimitExceeded, e.Code)
	assert.Equal(t, 429, e.Status)
	assert.Equal(t, 30, e.RetryAfterSeconds())
}

func TestAdmit_DisabledQuotas(t *testing.T) {
	l := New(Quota{}, nil, newTestLogger())
	for i := 0; i < 1000; i++ {
		require.True(t, l.Admit("a", ClassCompute).Allowed)
	}
}

func TestSweep_RemovesElapsedWindows(t *testing.T) {
	clock := newClock()
	l := newLimiter(clock, Quota{Limit: 1, Window: time.Minute}, nil)

	require.True(t, l.Admit("a", ClassRead).Allowed)
	require.True(t, l.Admit("b", ClassRead).Allowed)
	assert.Equal(t, 0, l.Sweep())

	clock.Advance(time.Minute)
	assert.Equal(t, 2, l.Sweep())

	// после удаления окно создаётся заново
	assert.True(t, l.Admit("a", ClassRead).Allowed)
	assert.False(t, l.Admit("a", ClassRead).Allowed)
}

func TestConfig_Quotas(t *testing.T) {
	cfg := Config{GlobalLimit: 100, GlobalWindow: time.Minute, ReadLimit: 50, ReadWindow: time.Minute, ComputeLimit: 5, ComputeWindow: 2 * time.Minute}
	g, classes := cfg.Quotas()
	assert.Equal(t, Quota{Limit: 100, Window: time.Minute}, g)
	assert.Equal(t, Quota{Limit: 5, Window: 2 * time.Minute}, classes[ClassCompute])
	assert.Equal(t, Quota{Limit: 50, Window: time.Minute}, classes[ClassRead])
}
