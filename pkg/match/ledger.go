package match

import (
	"strconv"
	"sync"
)

// AllocationLedger serializes the allocate-and-persist sequence for a
// (crop, requirement) pair. Without it, two engine runs scanning the same
// crop could both read the same available quantity and over-allocate past the
// predicted yield, or push a requirement past its total.
//
// This implementation uses in-process keyed mutexes, which is sufficient for
// the single-process SQLite deployment. The two lock classes are always
// acquired crop-first, requirement-second, and a holder owns at most one lock
// of each class, so the ordering admits no cycle.
type AllocationLedger struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLedger() *AllocationLedger {
	return &AllocationLedger{locks: map[string]*sync.Mutex{}}
}

func (l *AllocationLedger) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// LockPair acquires the crop lock, then the requirement lock, and returns the
// release function.
func (l *AllocationLedger) LockPair(cropID, requirementID uint) func() {
	cropLock := l.get(key("crop", cropID))
	reqLock := l.get(key("requirement", requirementID))
	cropLock.Lock()
	reqLock.Lock()
	return func() {
		reqLock.Unlock()
		cropLock.Unlock()
	}
}

func key(kind string, id uint) string {
	return kind + "/" + strconv.FormatUint(uint64(id), 10)
}
