package fulfillment

import (
	"log"
	"sync"
	"time"
	"vbs/src/config"
	"vbs/src/lib"

	"github.com/go-co-op/gocron/v2"
)

// ProcessingGuard tracks which order ids currently have a completion attempt
// in flight. It is a per-process optimization that keeps duplicate triggers
// from piling up on the same order; correctness against duplicates comes from
// the order state machine, not from this set.
type ProcessingGuard struct {
	mu       sync.Mutex
	inflight map[uint]struct{}
	ttl      time.Duration
	schedule func(d time.Duration, fn func())
}

func NewProcessingGuard(ttl time.Duration) *ProcessingGuard {
	g := &ProcessingGuard{
		inflight: make(map[uint]struct{}),
		ttl:      ttl,
	}
	g.schedule = g.scheduleRelease
	return g
}

// TryAcquire marks the order id in flight. It returns false when another
// attempt already holds the id; callers then report the request as a
// "processing" no-op rather than an error. Every successful acquire schedules
// an unconditional release after the guard's timeout so a crashed holder
// cannot wedge the order forever.
func (g *ProcessingGuard) TryAcquire(orderId uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.inflight[orderId]; held {
		return false
	}
	g.inflight[orderId] = struct{}{}
	g.schedule(g.ttl, func() {
		g.Release(orderId)
	})
	return true
}

func (g *ProcessingGuard) Release(orderId uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, orderId)
}

// scheduleRelease runs the release on the shared scheduler, falling back to a
// plain timer when the scheduler is unavailable.
func (g *ProcessingGuard) scheduleRelease(d time.Duration, fn func()) {
	_, err := lib.CreateOneTimeCronJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(d))),
		gocron.NewTask(fn),
	)
	if err != nil {
		log.Printf("[Guard] Error scheduling release job: %s\n", err.Error())
		time.AfterFunc(d, fn)
	}
}

// DefaultGuard serializes completion attempts per order for the whole process.
var DefaultGuard = NewProcessingGuard(config.ProcessingGuardTTL)
