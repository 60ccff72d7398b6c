package des

import "fmt"

type storeWait[T any] struct {
	p     *Proc
	item  T
	ready bool
}

// Store holds distinct items (staff members, glasses, vans). Get blocks
// until an item is available and returns the oldest one; Put blocks while
// the store is full. Waiters on both sides are served FIFO.
type Store[T any] struct {
	env      *Environment
	capacity int // 0 = unbounded
	items    []T
	getters  []*storeWait[T]
	putters  []*storeWait[T]
}

// NewStore creates an empty store. capacity 0 means unbounded.
func NewStore[T any](env *Environment, capacity int) *Store[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("NewStore: negative capacity %d", capacity))
	}
	return &Store[T]{env: env, capacity: capacity}
}

// Put adds item, suspending p while the store is full.
func (s *Store[T]) Put(p *Proc, item T) {
	w := &storeWait[T]{p: p, item: item}
	s.putters = append(s.putters, w)
	s.settle(w)
	if !w.ready {
		p.yield()
	}
}

// Get removes and returns the oldest item, suspending p until one is
// available.
func (s *Store[T]) Get(p *Proc) T {
	w := &storeWait[T]{p: p}
	s.getters = append(s.getters, w)
	s.settle(w)
	if !w.ready {
		p.yield()
	}
	return w.item
}

// settle moves items from putters to the store and from the store to
// getters, FIFO on both sides, until neither head can make progress.
func (s *Store[T]) settle(current *storeWait[T]) {
	for progress := true; progress; {
		progress = false
		if len(s.putters) > 0 {
			put := s.putters[0]
			if s.capacity == 0 || len(s.items) < s.capacity {
				s.items = append(s.items, put.item)
				s.putters = s.putters[1:]
				s.grant(put, current)
				progress = true
			}
		}
		if len(s.getters) > 0 && len(s.items) > 0 {
			g := s.getters[0]
			g.item = s.items[0]
			s.items = s.items[1:]
			s.getters = s.getters[1:]
			s.grant(g, current)
			progress = true
		}
	}
}

func (s *Store[T]) grant(w, current *storeWait[T]) {
	w.ready = true
	if w == current {
		return
	}
	p := w.p
	s.env.schedule(s.env.now, func() { s.env.step(p) })
}

// Len returns the number of stored items.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Current returns the number of stored items. Alias of Len for uniform
// resource probing.
func (s *Store[T]) Current() int {
	return len(s.items)
}

// Capacity returns the maximum item count, or 0 when unbounded.
func (s *Store[T]) Capacity() int {
	return s.capacity
}
