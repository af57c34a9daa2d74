package services

import "sync"

// recordLocks serializes claims per record. Entries are dropped once nobody
// holds or waits for them.
type recordLocks struct {
	mu    sync.Mutex
	locks map[string]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: make(map[string]*recordLock)}
}

func (l *recordLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	rl, ok := l.locks[key]
	if !ok {
		rl = &recordLock{}
		l.locks[key] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.mu.Lock()

	return func() {
		rl.mu.Unlock()

		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// lockClaim takes the distributor lock before the entry lock. Every claim
// path goes through here so the order is fixed.
func (l *recordLocks) lockClaim(distributorID, entryID string) (unlock func()) {
	unlockDistributor := l.lock("distributor:" + distributorID)
	unlockEntry := l.lock("entry:" + entryID)
	return func() {
		unlockEntry()
		unlockDistributor()
	}
}

func (l *recordLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
