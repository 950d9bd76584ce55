package fulfillment

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestGuard() (*ProcessingGuard, *[]func()) {
	g := NewProcessingGuard(time.Second)
	pending := &[]func(){}
	g.schedule = func(d time.Duration, fn func()) {
		*pending = append(*pending, fn)
	}
	return g, pending
}

func TestGuardAcquireRelease(t *testing.T) {
	g, _ := newTestGuard()

	assert.True(t, g.TryAcquire(1))
	assert.False(t, g.TryAcquire(1))
	assert.True(t, g.TryAcquire(2))

	g.Release(1)
	assert.True(t, g.TryAcquire(1))
}

func TestGuardConcurrentAcquire(t *testing.T) {
	g, _ := newTestGuard()

	var wg sync.WaitGroup
	acquired := make(chan bool, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acquired <- g.TryAcquire(7)
		}()
	}
	wg.Wait()
	close(acquired)

	wins := 0
	for ok := range acquired {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestGuardAutoRelease(t *testing.T) {
	g, pending := newTestGuard()

	assert.True(t, g.TryAcquire(9))
	assert.False(t, g.TryAcquire(9))
	assert.Len(t, *pending, 1)

	(*pending)[0]()
	assert.True(t, g.TryAcquire(9))
}

func TestGuardReleaseAfterExpiryIsNoop(t *testing.T) {
	g, pending := newTestGuard()

	assert.True(t, g.TryAcquire(3))
	(*pending)[0]()
	assert.True(t, g.TryAcquire(3))

	// The first attempt's deferred release must not free the second holder's
	// slot twice in a harmful way; releasing an absent id is a no-op.
	g.Release(3)
	g.Release(3)
	assert.True(t, g.TryAcquire(3))
}
