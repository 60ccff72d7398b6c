package des

import "fmt"

// Resource is a capacity-bounded pool of identical slots (servers, seats,
// machines). Acquire blocks while all slots are held; waiters are served
// first-come-first-served. On release the slot is handed directly to the
// head waiter at the current instant, so a freed slot can never be stolen
// by a later arrival.
type Resource struct {
	env      *Environment
	capacity int
	inUse    int
	waiters  []*Proc
}

// NewResource creates a resource with the given slot count.
func NewResource(env *Environment, capacity int) *Resource {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewResource: capacity must be positive, got %d", capacity))
	}
	return &Resource{env: env, capacity: capacity}
}

// Acquire takes one slot, suspending p until one is available.
func (r *Resource) Acquire(p *Proc) {
	if r.inUse < r.capacity && len(r.waiters) == 0 {
		r.inUse++
		return
	}
	r.waiters = append(r.waiters, p)
	p.yield()
	// The releasing process transferred its slot; inUse already accounts
	// for it.
}

// Release returns one slot. If a process is waiting, the slot transfers to
// it without ever becoming free.
func (r *Resource) Release() {
	if r.inUse <= 0 {
		panic("Release: resource has no held slots")
	}
	if len(r.waiters) > 0 {
		w := r.waiters[0]
		r.waiters = r.waiters[1:]
		r.env.schedule(r.env.now, func() { r.env.step(w) })
		return
	}
	r.inUse--
}

// Current returns the number of held slots.
func (r *Resource) Current() int {
	return r.inUse
}

// Capacity returns the total slot count.
func (r *Resource) Capacity() int {
	return r.capacity
}
