package insights

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/salesboard/internal/clients/transport"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func countingAcquirer(calls *int32) AcquireFunc {
	return func(ctx context.Context) (string, error) {
		n := atomic.AddInt32(calls, 1)
		return fmt.Sprintf("token-%d", n), nil
	}
}

func TestTokenCache_ConcurrentCallersShareOneAcquisition(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	acquire := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}
	cache := NewTokenCache(acquire, time.Hour, zerolog.Nop())

	const callers = 20
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Token(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestTokenCache_ReusesUntilExpiry(t *testing.T) {
	var calls int32
	clock := newFakeClock()
	cache := NewTokenCache(countingAcquirer(&calls), time.Hour, zerolog.Nop(), WithClock(clock.Now))

	token, err := cache.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token.Value)
	assert.Equal(t, clock.Now().Add(time.Hour), token.ExpiresAt)

	clock.Advance(59 * time.Minute)
	token, err = cache.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token.Value)

	clock.Advance(time.Minute)
	token, err = cache.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token.Value, "token is expired at exactly its expiry instant")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenCache_FailureIsAuthAcquisitionError(t *testing.T) {
	attempts := 0
	acquire := func(ctx context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", errors.New("identity endpoint down")
		}
		return "recovered", nil
	}
	cache := NewTokenCache(acquire, time.Hour, zerolog.Nop())

	_, err := cache.Token(context.Background())
	var authErr *transport.AuthAcquisitionError
	require.ErrorAs(t, err, &authErr)

	token, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "recovered", token)
}

func TestTokenCache_EmptyTokenIsFailure(t *testing.T) {
	cache := NewTokenCache(func(context.Context) (string, error) { return "", nil }, time.Hour, zerolog.Nop())

	_, err := cache.Token(context.Background())
	var authErr *transport.AuthAcquisitionError
	assert.ErrorAs(t, err, &authErr)
}

func TestTokenCache_InvalidateForcesReacquire(t *testing.T) {
	var calls int32
	cache := NewTokenCache(countingAcquirer(&calls), time.Hour, zerolog.Nop())

	first, err := cache.Token(context.Background())
	require.NoError(t, err)

	cache.Invalidate(first)

	second, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenCache_InvalidateIgnoresReplacedToken(t *testing.T) {
	var calls int32
	cache := NewTokenCache(countingAcquirer(&calls), time.Hour, zerolog.Nop())

	first, err := cache.Token(context.Background())
	require.NoError(t, err)
	cache.Invalidate(first)

	second, err := cache.Token(context.Background())
	require.NoError(t, err)

	// A late rejection of the first token must not discard its replacement.
	cache.Invalidate(first)
	cache.Invalidate("")

	third, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, third)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTokenCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	release := make(chan struct{})
	var acquireCtxErr atomic.Value
	acquire := func(ctx context.Context) (string, error) {
		<-release
		if err := ctx.Err(); err != nil {
			acquireCtxErr.Store(err)
		}
		return "survivor", nil
	}
	cache := NewTokenCache(acquire, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Token(ctx)
		firstErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	secondResult := make(chan string, 1)
	go func() {
		token, _ := cache.Token(context.Background())
		secondResult <- token
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.Error(t, <-firstErr)

	close(release)
	assert.Equal(t, "survivor", <-secondResult)
	assert.Nil(t, acquireCtxErr.Load(), "acquisition context is not cancelled with the first caller")
}
