package usecase

import "sync"

// gameLocks serializes load-modify-save cycles per game id. Entries are
// dropped once no request holds or waits for them.
type gameLocks struct {
	mutex sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*gameLock)}
}

// lock - blocks until the caller owns the game and returns the matching unlock.
func (that *gameLocks) lock(id string) func() {
	that.mutex.Lock()
	entry, ok := that.locks[id]
	if !ok {
		entry = &gameLock{}
		that.locks[id] = entry
	}
	entry.refs++
	that.mutex.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		that.mutex.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, id)
		}
		that.mutex.Unlock()
	}
}
