package services

import "sync"

// orderLocks serializes status mutations per order id without blocking
// unrelated orders. Entries are reference counted and removed once the
// last holder releases, so the map does not grow with order history.
type orderLocks struct {
	mu sync.Mutex
	m  map[uint]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{m: make(map[uint]*orderLock)}
}

// Lock acquires the per-order mutex and returns its release func.
func (l *orderLocks) Lock(orderID uint) func() {
	l.mu.Lock()
	e, ok := l.m[orderID]
	if !ok {
		e = &orderLock{}
		l.m[orderID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, orderID)
		}
		l.mu.Unlock()
	}
}
