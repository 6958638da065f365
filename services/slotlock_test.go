package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlotLockDropsIdleBuckets(t *testing.T) {
	l := newSlotLock()
	base := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		unlock := l.lock("Manikura", base.Add(time.Duration(i)*time.Hour))
		unlock()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	require.Empty(t, l.buckets)
}

func TestSlotLockSerializesSameBucket(t *testing.T) {
	l := newSlotLock()
	base := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	var inCritical int
	var maxConcurrentSeen int

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Same hour bucket regardless of the minute offset
			unlock := l.lock("Manikura", base.Add(5*time.Minute))
			defer unlock()

			mu.Lock()
			inCritical++
			if inCritical > maxConcurrentSeen {
				maxConcurrentSeen = inCritical
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxConcurrentSeen)

	l.mu.Lock()
	defer l.mu.Unlock()
	require.Empty(t, l.buckets)
}

func TestSlotLockIndependentBuckets(t *testing.T) {
	l := newSlotLock()
	base := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	// A held lock on one bucket must not block a different service or hour
	unlockA := l.lock("Manikura", base)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := l.lock("Pedikura", base)
		unlockB()
		unlockC := l.lock("Manikura", base.Add(time.Hour))
		unlockC()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("independent buckets blocked each other")
	}
}
