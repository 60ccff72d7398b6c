package des

import (
	"strings"
	"testing"
)

func TestEnvironment_EventsFireInTimeOrder(t *testing.T) {
	// GIVEN two processes whose timeouts end in reverse scheduling order
	env := NewEnvironment()
	var order []string
	env.Process(func(p *Proc) {
		p.Timeout(2)
		order = append(order, "late")
	})
	env.Process(func(p *Proc) {
		p.Timeout(1)
		order = append(order, "early")
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the shorter timeout resumed first and the clock sits at the last event
	if got := strings.Join(order, ","); got != "early,late" {
		t.Errorf("execution order: got %s, want early,late", got)
	}
	if env.Now() != 2 {
		t.Errorf("Now: got %v, want 2", env.Now())
	}
}

func TestEnvironment_TiesResolveInSchedulingOrder(t *testing.T) {
	// GIVEN two processes resuming at the same virtual time
	env := NewEnvironment()
	var order []string
	env.Process(func(p *Proc) {
		p.Timeout(1)
		order = append(order, "first")
	})
	env.Process(func(p *Proc) {
		p.Timeout(1)
		order = append(order, "second")
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN they resumed in registration order
	if got := strings.Join(order, ","); got != "first,second" {
		t.Errorf("tie order: got %s, want first,second", got)
	}
}

func TestProc_WaitJoinsChildProcess(t *testing.T) {
	// GIVEN a root process waiting on a child with a 5-unit timeout
	env := NewEnvironment()
	var resumedAt float64 = -1
	env.Process(func(p *Proc) {
		child := env.Process(func(q *Proc) {
			q.Timeout(5)
		})
		p.Wait(child)
		resumedAt = env.Now()
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the root resumed exactly when the child finished
	if resumedAt != 5 {
		t.Errorf("resumedAt: got %v, want 5", resumedAt)
	}
}

func TestProc_WaitOnFinishedProcessReturnsImmediately(t *testing.T) {
	// GIVEN a child that finishes before the root waits on it
	env := NewEnvironment()
	var resumedAt float64 = -1
	env.Process(func(p *Proc) {
		child := env.Process(func(q *Proc) {})
		p.Timeout(3)
		if !child.Done() {
			t.Error("child should be done after 3 units")
		}
		p.Wait(child)
		resumedAt = env.Now()
	})

	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN Wait did not advance time
	if resumedAt != 3 {
		t.Errorf("resumedAt: got %v, want 3", resumedAt)
	}
}

func TestEnvironment_PanicInProcessAbortsRun(t *testing.T) {
	// GIVEN a process that panics mid-run and another with later activity
	env := NewEnvironment()
	reached := false
	env.Process(func(p *Proc) {
		p.Timeout(1)
		panic("model invariant broken")
	})
	env.Process(func(p *Proc) {
		p.Timeout(10)
		reached = true
	})

	// WHEN the environment runs
	err := env.Run()

	// THEN the run fails with the panic message and later events never fire
	if err == nil {
		t.Fatal("Run: expected error, got nil")
	}
	if !strings.Contains(err.Error(), "model invariant broken") {
		t.Errorf("error: got %v, want panic message included", err)
	}
	if reached {
		t.Error("event after the failure still executed")
	}
}

func TestEnvironment_RunUntilStopsAtHorizon(t *testing.T) {
	// GIVEN a process with activity well past the horizon
	env := NewEnvironment()
	steps := 0
	env.Process(func(p *Proc) {
		for i := 0; i < 100; i++ {
			p.Timeout(1)
			steps++
		}
	})

	// WHEN running with a horizon of 10.5
	if err := env.RunUntil(10.5); err != nil {
		t.Fatalf("RunUntil: unexpected error %v", err)
	}

	// THEN only the events at or before the horizon executed
	if steps != 10 {
		t.Errorf("steps: got %d, want 10", steps)
	}
	if env.Now() != 10.5 {
		t.Errorf("Now: got %v, want 10.5", env.Now())
	}
}

func TestEnvironment_QuiescenceWithBlockedProcess(t *testing.T) {
	// GIVEN a process blocked forever on an empty store
	env := NewEnvironment()
	s := NewStore[int](env, 0)
	env.Process(func(p *Proc) {
		s.Get(p)
		t.Error("starved process should never resume")
	})
	env.Process(func(p *Proc) {
		p.Timeout(2)
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN quiescence is reached despite the blocked process
	if env.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", env.Pending())
	}
}

func TestProc_NegativeTimeoutFailsRun(t *testing.T) {
	// GIVEN a process requesting a negative delay
	env := NewEnvironment()
	env.Process(func(p *Proc) {
		p.Timeout(-1)
	})

	// WHEN the environment runs
	err := env.Run()

	// THEN the run fails
	if err == nil {
		t.Fatal("Run: expected error for negative timeout, got nil")
	}
}
