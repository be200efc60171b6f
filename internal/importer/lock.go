package importer

import (
	"fmt"
	"sync"
)

// runLocks serializes import runs per source configuration. The upsert logic
// is read-then-write and is not safe under concurrent modification of the
// same natural key, so two runs against one configuration must not interleave.
type runLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRunLocks() *runLocks {
	return &runLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire takes the lock for one (source, configuration) pair and returns the
// release func.
func (r *runLocks) acquire(source string, configID uint) func() {
	key := fmt.Sprintf("%s/%d", source, configID)

	r.mu.Lock()
	lock, ok := r.locks[key]

	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	r.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}
