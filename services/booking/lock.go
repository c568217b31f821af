package booking

import "sync"

// keyedLocks hands out one mutex per court+date so the read-check-write
// sequence of a creation request cannot interleave with another request for
// the same court and day. This closes the check-then-act race within a
// single process; a multi-instance deployment would still need a storage
// level guard (documented limitation).
//
// The zero value is ready to use.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// acquire blocks until the lock for key is held and returns the release
// function. Entries are reference counted and removed once unused, so the
// map does not grow with every court/date ever seen.
func (k *keyedLocks) acquire(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
