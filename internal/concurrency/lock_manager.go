package concurrency

import (
	"sync"
)

type refLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out named mutexes. An entry lives only while someone
// holds or waits for it, so per-contest keys do not accumulate.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*refLock)}
}

// Lock blocks until the named lock is held and returns its release func
func (lm *LockManager) Lock(key string) func() {
	l := lm.acquire(key)
	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		lm.release(key, l)
	}
}

// TryLock takes the named lock only if it is free
func (lm *LockManager) TryLock(key string) (func(), bool) {
	l := lm.acquire(key)
	if !l.mu.TryLock() {
		lm.release(key, l)
		return nil, false
	}
	return func() {
		l.mu.Unlock()
		lm.release(key, l)
	}, true
}

// Len reports how many named locks are currently tracked
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}

func (lm *LockManager) acquire(key string) *refLock {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	l, ok := lm.locks[key]
	if !ok {
		l = &refLock{}
		lm.locks[key] = l
	}
	l.refs++
	return l
}

func (lm *LockManager) release(key string, l *refLock) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
}

// ContestKey is the lock name used for per-contest critical sections
func ContestKey(contestID string) string {
	return "contest:" + contestID
}
