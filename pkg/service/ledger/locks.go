package ledger

import (
	"bytes"
	"sync"

	"github.com/google/uuid"
)

// lockRegistry hands out one mutex per account so mutations on the same
// account serialize while unrelated accounts proceed in parallel.
//
// Mutexes are created on first use and kept for the registry's lifetime;
// the account population is small enough that reclaiming them is not worth
// the bookkeeping.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (r *lockRegistry) get(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// Lock acquires the account's mutex and returns the unlock function.
func (r *lockRegistry) Lock(id uuid.UUID) func() {
	l := r.get(id)
	l.Lock()
	return l.Unlock
}

// LockPair acquires both accounts' mutexes in a total order over account ids
// (byte-wise comparison), so two transfers running in opposite directions
// between the same pair cannot deadlock.
func (r *lockRegistry) LockPair(a, b uuid.UUID) func() {
	if a == b {
		return r.Lock(a)
	}
	first, second := a, b
	if bytes.Compare(a[:], b[:]) > 0 {
		first, second = b, a
	}
	fl, sl := r.get(first), r.get(second)
	fl.Lock()
	sl.Lock()
	return func() {
		sl.Unlock()
		fl.Unlock()
	}
}
