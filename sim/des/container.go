package des

import "fmt"

type containerWait struct {
	p      *Proc
	amount int
	ready  bool
}

// Container holds a divisible integer quantity (parts in a bin, liters in a
// tank). Get blocks until the level covers the requested amount; Put blocks
// while it would push the level over capacity. Both sides are served in
// strict FIFO order: a large blocked request holds back later, smaller ones.
type Container struct {
	env      *Environment
	level    int
	capacity int // 0 = unbounded
	getters  []*containerWait
	putters  []*containerWait
}

// NewContainer creates a container at the given initial level.
// capacity 0 means unbounded.
func NewContainer(env *Environment, initial, capacity int) *Container {
	if initial < 0 {
		panic(fmt.Sprintf("NewContainer: negative initial level %d", initial))
	}
	if capacity < 0 {
		panic(fmt.Sprintf("NewContainer: negative capacity %d", capacity))
	}
	if capacity > 0 && initial > capacity {
		panic(fmt.Sprintf("NewContainer: initial level %d exceeds capacity %d", initial, capacity))
	}
	return &Container{env: env, level: initial, capacity: capacity}
}

// Get removes amount from the container, suspending p until enough is
// available.
func (c *Container) Get(p *Proc, amount int) {
	if amount <= 0 {
		panic(fmt.Sprintf("Get: amount must be positive, got %d", amount))
	}
	w := &containerWait{p: p, amount: amount}
	c.getters = append(c.getters, w)
	c.settle(w)
	if !w.ready {
		p.yield()
	}
}

// Put adds amount to the container, suspending p while the level would
// exceed capacity.
func (c *Container) Put(p *Proc, amount int) {
	if amount <= 0 {
		panic(fmt.Sprintf("Put: amount must be positive, got %d", amount))
	}
	if c.capacity > 0 && amount > c.capacity {
		panic(fmt.Sprintf("Put: amount %d can never fit capacity %d", amount, c.capacity))
	}
	w := &containerWait{p: p, amount: amount}
	c.putters = append(c.putters, w)
	c.settle(w)
	if !w.ready {
		p.yield()
	}
}

// settle grants queued gets and puts in FIFO order until neither head can
// make progress. The caller's own wait entry is marked ready in place;
// other satisfied waiters are resumed at the current instant.
func (c *Container) settle(current *containerWait) {
	for progress := true; progress; {
		progress = false
		if len(c.getters) > 0 {
			g := c.getters[0]
			if c.level >= g.amount {
				c.level -= g.amount
				c.getters = c.getters[1:]
				c.grant(g, current)
				progress = true
			}
		}
		if len(c.putters) > 0 {
			put := c.putters[0]
			if c.capacity == 0 || c.level+put.amount <= c.capacity {
				c.level += put.amount
				c.putters = c.putters[1:]
				c.grant(put, current)
				progress = true
			}
		}
	}
}

func (c *Container) grant(w, current *containerWait) {
	w.ready = true
	if w == current {
		return
	}
	p := w.p
	c.env.schedule(c.env.now, func() { c.env.step(p) })
}

// Level returns the current stored quantity.
func (c *Container) Level() int {
	return c.level
}

// Current returns the current stored quantity. Alias of Level for uniform
// resource probing.
func (c *Container) Current() int {
	return c.level
}

// Capacity returns the maximum level, or 0 when unbounded.
func (c *Container) Capacity() int {
	return c.capacity
}
