package des

import (
	"testing"
)

func TestResource_WaitersServedFIFO(t *testing.T) {
	// GIVEN one slot contended by three processes holding it 1 unit each
	env := NewEnvironment()
	res := NewResource(env, 1)
	var order []int
	var times []float64
	for i := 1; i <= 3; i++ {
		i := i
		env.Process(func(p *Proc) {
			res.Acquire(p)
			order = append(order, i)
			times = append(times, env.Now())
			p.Timeout(1)
			res.Release()
		})
	}

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the slot was granted in arrival order at 0, 1, 2
	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("grant order: got %v, want %v", order, want)
		}
		if times[i] != float64(i) {
			t.Errorf("grant time %d: got %v, want %d", i, times[i], i)
		}
	}
	if res.Current() != 0 {
		t.Errorf("Current after drain: got %d, want 0", res.Current())
	}
}

func TestResource_ReleaseHandsSlotToHeadWaiter(t *testing.T) {
	// GIVEN a held slot with one waiter and a later third arrival
	env := NewEnvironment()
	res := NewResource(env, 1)
	var got []int
	env.Process(func(p *Proc) {
		res.Acquire(p)
		p.Timeout(5)
		res.Release()
	})
	env.Process(func(p *Proc) {
		p.Timeout(1)
		res.Acquire(p)
		got = append(got, 2)
		p.Timeout(5)
		res.Release()
	})
	env.Process(func(p *Proc) {
		p.Timeout(2)
		res.Acquire(p)
		got = append(got, 3)
		res.Release()
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the earlier waiter was served before the later one
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("service order: got %v, want [2 3]", got)
	}
}

func TestContainer_GetBlocksUntilLevelCovers(t *testing.T) {
	// GIVEN an empty container and a put arriving at t=3
	env := NewEnvironment()
	c := NewContainer(env, 0, 0)
	var gotAt float64 = -1
	env.Process(func(p *Proc) {
		c.Get(p, 5)
		gotAt = env.Now()
	})
	env.Process(func(p *Proc) {
		p.Timeout(3)
		c.Put(p, 5)
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the get completed exactly when the put landed
	if gotAt != 3 {
		t.Errorf("gotAt: got %v, want 3", gotAt)
	}
	if c.Level() != 0 {
		t.Errorf("Level: got %d, want 0", c.Level())
	}
}

func TestContainer_PutBlocksAtCapacity(t *testing.T) {
	// GIVEN a full container of capacity 10 with a pending put of 5
	env := NewEnvironment()
	c := NewContainer(env, 0, 10)
	var putDoneAt float64 = -1
	env.Process(func(p *Proc) {
		c.Put(p, 10)
		c.Put(p, 5)
		putDoneAt = env.Now()
	})
	env.Process(func(p *Proc) {
		p.Timeout(2)
		c.Get(p, 8)
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the blocked put completed once the get freed room
	if putDoneAt != 2 {
		t.Errorf("putDoneAt: got %v, want 2", putDoneAt)
	}
	if c.Level() != 7 {
		t.Errorf("Level: got %d, want 7", c.Level())
	}
}

func TestStore_ItemsDeliveredFIFO(t *testing.T) {
	// GIVEN two getters queued before any item exists
	env := NewEnvironment()
	s := NewStore[string](env, 0)
	var first, second string
	env.Process(func(p *Proc) {
		first = s.Get(p)
	})
	env.Process(func(p *Proc) {
		second = s.Get(p)
	})
	env.Process(func(p *Proc) {
		p.Timeout(1)
		s.Put(p, "a")
		s.Put(p, "b")
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the oldest getter received the oldest item
	if first != "a" || second != "b" {
		t.Errorf("delivery: got (%q, %q), want (a, b)", first, second)
	}
}

func TestStore_PutBlocksWhenFull(t *testing.T) {
	// GIVEN a store of capacity 1 already holding an item
	env := NewEnvironment()
	s := NewStore[int](env, 1)
	var putDoneAt float64 = -1
	var taken int
	env.Process(func(p *Proc) {
		s.Put(p, 1)
		s.Put(p, 2)
		putDoneAt = env.Now()
	})
	env.Process(func(p *Proc) {
		p.Timeout(4)
		taken = s.Get(p)
	})

	// WHEN the environment drains
	if err := env.Run(); err != nil {
		t.Fatalf("Run: unexpected error %v", err)
	}

	// THEN the second put waited for the get, which took the oldest item
	if putDoneAt != 4 {
		t.Errorf("putDoneAt: got %v, want 4", putDoneAt)
	}
	if taken != 1 {
		t.Errorf("taken: got %d, want 1", taken)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}
