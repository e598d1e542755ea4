package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// MockRunner counts pipeline runs for the worker tests
type MockRunner struct {
	mu     sync.Mutex
	runs   int
	runErr error
}

var _ Runner = (*MockRunner)(nil)

func (m *MockRunner) Run() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	return m.runErr
}

func (m *MockRunner) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

func TestWorkerRunsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := &MockRunner{}
	w := NewWorker(ctx, runner, time.Hour)

	done := make(chan error, 1)
	go func() {
		done <- w.Start()
	}()

	// The first run happens before the first tick
	assert.Eventually(t, func() bool {
		return runner.Runs() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestWorkerTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := &MockRunner{}
	w := NewWorker(ctx, runner, 20*time.Millisecond)

	go w.Start()

	assert.Eventually(t, func() bool {
		return runner.Runs() >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestWorkerKeepsRunningAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := &MockRunner{runErr: errors.New("scrape went sideways")}
	w := NewWorker(ctx, runner, 20*time.Millisecond)

	go w.Start()

	// Failures are logged, the loop keeps ticking
	assert.Eventually(t, func() bool {
		return runner.Runs() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := &MockRunner{}
	w := NewWorker(ctx, runner, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- w.Start()
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	runsAtStop := runner.Runs()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, runsAtStop, runner.Runs())
}
