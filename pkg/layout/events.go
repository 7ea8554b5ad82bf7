package layout

import (
	"slices"
	"sync"
)

// ResizeEvent reports the new ratio of one split child after an in-place resize.
type ResizeEvent struct {
	Index int     // Child slot whose ratio changed
	Ratio float64 // New ratio of that slot
}

// TabEvent reports a change of the current tab.
type TabEvent struct {
	Previous int
	Current  int
}

// emitter fans events out to subscribers. The zero value is ready to use.
type emitter[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
}

func (e *emitter[T]) subscribe(fn func(T)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subs == nil {
		e.subs = make(map[int]func(T))
	}
	id := e.next
	e.next++
	e.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// emit delivers ev to the subscribers registered at the time of the call,
// in subscription order. Handlers run outside the lock so they may
// unsubscribe themselves.
func (e *emitter[T]) emit(ev T) {
	e.mu.Lock()
	if len(e.subs) == 0 {
		e.mu.Unlock()
		return
	}
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(T), len(ids))
	for i, id := range ids {
		fns[i] = e.subs[id]
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (e *emitter[T]) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
