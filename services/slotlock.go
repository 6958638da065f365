package services

import (
	"sync"
	"time"
)

// slotLock serializes booking attempts that target the same service and hour
// bucket, closing the check-then-insert race between two concurrent requests
// for the same slot. The bucket is deliberately coarse; contention on it is
// rare and held only for the duration of one booking transaction.
//
// Buckets are refcounted and dropped on the last unlock, so the map stays
// proportional to in-flight bookings rather than growing per slot forever.
type slotLock struct {
	mu      sync.Mutex
	buckets map[string]*slotBucket
}

type slotBucket struct {
	mu   sync.Mutex
	refs int
}

func newSlotLock() *slotLock {
	return &slotLock{buckets: make(map[string]*slotBucket)}
}

func (l *slotLock) lock(service string, start time.Time) func() {
	key := service + "|" + start.Truncate(time.Hour).UTC().Format("2006-01-02T15")

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &slotBucket{}
		l.buckets[key] = b
	}
	b.refs++
	l.mu.Unlock()

	b.mu.Lock()
	return func() {
		b.mu.Unlock()
		l.mu.Lock()
		b.refs--
		if b.refs == 0 {
			delete(l.buckets, key)
		}
		l.mu.Unlock()
	}
}
