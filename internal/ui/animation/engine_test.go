package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type steps struct {
	mu      sync.Mutex
	indices []int
}

func (rec *steps) reveal(index int) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.indices = append(rec.indices, index)
}

func (rec *steps) seen() []int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]int(nil), rec.indices...)
}

func newEngine() (*Engine, *steps, *clock.Mock) {
	mock := clock.NewMock()
	rec := &steps{}
	engine := New(DefaultConfig(), rec.reveal, Options{
		Clock:    mock,
		Dispatch: func(fn func()) { fn() },
	})
	return engine, rec, mock
}

func revealedCount(rec *steps, want int) func() bool {
	return func() bool { return len(rec.seen()) == want }
}

func TestRevealIsStaggered(t *testing.T) {
	engine, rec, mock := newEngine()
	defer engine.Stop()
	engine.Start(context.Background(), 3)

	mock.Add(time.Millisecond)
	require.Eventually(t, revealedCount(rec, 1), time.Second, 5*time.Millisecond)

	mock.Add(198 * time.Millisecond)
	assert.Never(t, revealedCount(rec, 2), 50*time.Millisecond, 5*time.Millisecond)

	mock.Add(time.Millisecond)
	require.Eventually(t, revealedCount(rec, 2), time.Second, 5*time.Millisecond)

	mock.Add(200 * time.Millisecond)
	require.Eventually(t, revealedCount(rec, 3), time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{0, 1, 2}, rec.seen())
	assert.Equal(t, 3, engine.Revealed())
}

func TestStopCancelsRemainingSteps(t *testing.T) {
	engine, rec, mock := newEngine()
	engine.Start(context.Background(), 4)

	mock.Add(time.Millisecond)
	require.Eventually(t, revealedCount(rec, 1), time.Second, 5*time.Millisecond)

	engine.Stop()
	mock.Add(time.Second)
	assert.Never(t, revealedCount(rec, 2), 50*time.Millisecond, 5*time.Millisecond)
}

func TestContextCancelStopsSequence(t *testing.T) {
	engine, rec, mock := newEngine()
	defer engine.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	engine.Start(ctx, 3)

	cancel()
	mock.Add(time.Second)
	assert.Never(t, func() bool { return len(rec.seen()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Zero(t, engine.Revealed())
}

func TestStartReplacesRunningSequence(t *testing.T) {
	engine, rec, mock := newEngine()
	defer engine.Stop()
	engine.Start(context.Background(), 5)
	engine.Start(context.Background(), 2)

	mock.Add(time.Second)
	require.Eventually(t, revealedCount(rec, 2), time.Second, 5*time.Millisecond)
	assert.Never(t, revealedCount(rec, 3), 50*time.Millisecond, 5*time.Millisecond)
	assert.ElementsMatch(t, []int{0, 1}, rec.seen())
}

func TestDelay(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, time.Duration(0), config.Delay(0))
	assert.Equal(t, 200*time.Millisecond, config.Delay(1))
	assert.Equal(t, 800*time.Millisecond, config.Delay(4))
	assert.Equal(t, 600*time.Millisecond, config.Fade)
}
