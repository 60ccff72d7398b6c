// Package des implements the discrete-event scheduling engine: a virtual
// clock, an event queue, and cooperative processes that suspend at timeouts
// and resource waits.
//
// Exactly one process body executes at any instant. The engine and the
// process goroutines hand control back and forth over unbuffered channels,
// so event execution is strictly sequential even though each process runs on
// its own goroutine. Events fire in ascending virtual-time order; ties
// resolve in scheduling order.
package des

import (
	"container/heap"
	"fmt"
	"math"
)

// event is a scheduled callback on the engine's virtual timeline.
type event struct {
	time float64
	seq  int64 // tie-break: scheduling order
	fn   func()
}

// eventQueue implements heap.Interface ordered by (time, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue []*event

func (eq eventQueue) Len() int { return len(eq) }
func (eq eventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}
func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(*event))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Environment holds the virtual clock and the event queue for one run.
// It is not safe for concurrent use; all access must happen from the engine
// goroutine or from the currently running process.
type Environment struct {
	now    float64
	seq    int64
	procID int64
	queue  eventQueue
	err    error
	// ack carries control from the running process back to the engine.
	ack chan struct{}
}

// NewEnvironment creates an empty environment with the clock at zero.
func NewEnvironment() *Environment {
	return &Environment{
		queue: make(eventQueue, 0),
		ack:   make(chan struct{}),
	}
}

// Now returns the current virtual time.
func (env *Environment) Now() float64 {
	return env.now
}

// Err returns the first process failure observed during the run, if any.
func (env *Environment) Err() error {
	return env.err
}

// schedule queues fn to fire at virtual time t.
func (env *Environment) schedule(t float64, fn func()) {
	env.seq++
	heap.Push(&env.queue, &event{time: t, seq: env.seq, fn: fn})
}

// Pending returns the number of queued events.
func (env *Environment) Pending() int {
	return env.queue.Len()
}

// Run drains the event queue: pop the earliest event, advance the clock,
// execute. It returns when no events remain (quiescence) or when a process
// body fails. Processes still blocked on a resource at quiescence are
// abandoned; quiescence is about events, not processes.
func (env *Environment) Run() error {
	return env.run(math.Inf(1))
}

// RunUntil behaves like Run but stops before executing any event scheduled
// past horizon, leaving the clock at the horizon. Processes with later
// events are abandoned.
func (env *Environment) RunUntil(horizon float64) error {
	return env.run(horizon)
}

func (env *Environment) run(horizon float64) error {
	for env.queue.Len() > 0 {
		ev := heap.Pop(&env.queue).(*event)
		if ev.time > horizon {
			env.now = horizon
			return env.err
		}
		env.now = ev.time
		ev.fn()
		if env.err != nil {
			return env.err
		}
	}
	return env.err
}

// fail records the first unrecovered process error. Later events still pop
// but the run loop stops before executing them.
func (env *Environment) fail(err error) {
	if env.err == nil {
		env.err = err
	}
}

// Proc is one cooperative process. Every blocking method must be called from
// the process's own body; calling them from outside the run is a programming
// error.
type Proc struct {
	env     *Environment
	id      int64
	resume  chan struct{}
	done    bool
	waiters []*Proc
}

// Process registers fn as a new process, started at the current virtual time
// after already-scheduled events. It may be called before the run starts (to
// register the root process) or from inside a running process body.
func (env *Environment) Process(fn func(*Proc)) *Proc {
	env.procID++
	p := &Proc{
		env:    env,
		id:     env.procID,
		resume: make(chan struct{}),
	}
	go func() {
		<-p.resume
		defer func() {
			if r := recover(); r != nil {
				env.fail(fmt.Errorf("process %d: %v", p.id, r))
			}
			p.finish()
			env.ack <- struct{}{}
		}()
		fn(p)
	}()
	env.schedule(env.now, func() { env.step(p) })
	return p
}

// step transfers control to p and blocks until p yields or returns.
func (env *Environment) step(p *Proc) {
	p.resume <- struct{}{}
	<-env.ack
}

// yield suspends the calling process until the engine resumes it.
func (p *Proc) yield() {
	p.env.ack <- struct{}{}
	<-p.resume
}

// finish marks p done and wakes joined processes at the current instant.
func (p *Proc) finish() {
	p.done = true
	for _, w := range p.waiters {
		w := w
		p.env.schedule(p.env.now, func() { p.env.step(w) })
	}
	p.waiters = nil
}

// Env returns the environment driving this process.
func (p *Proc) Env() *Environment {
	return p.env
}

// Done reports whether the process body has returned.
func (p *Proc) Done() bool {
	return p.done
}

// Timeout suspends the process for d units of virtual time.
// A negative delay is a model bug and aborts the run.
func (p *Proc) Timeout(d float64) {
	if d < 0 || math.IsNaN(d) {
		panic(fmt.Sprintf("Timeout: invalid delay %v", d))
	}
	env := p.env
	env.schedule(env.now+d, func() { env.step(p) })
	p.yield()
}

// Wait suspends the process until other's body has returned.
// Returns immediately if other is already done.
func (p *Proc) Wait(other *Proc) {
	if other.done {
		return
	}
	other.waiters = append(other.waiters, p)
	p.yield()
}
