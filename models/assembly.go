package models

import (
	"fmt"
	"math/rand"

	"github.com/enzo-santos-ufpa/sd/sim"
	"github.com/enzo-santos-ufpa/sd/sim/des"
	"github.com/enzo-santos-ufpa/sd/sim/dist"
)

// AssemblyCell models a two-station assembly cell. A supply run refills the
// parts pallet and the screw box roughly every 40 minutes. One worker kind
// clamps part pairs and machines them; the other joins machined pairs with
// four screws each. The cell runs for one shift.
func AssemblyCell() (*sim.Schema, error) {
	return sim.New("assembly-cell", sim.Minutes, runAssemblyCell,
		sim.Param{Name: "workerPairs", Key: "worker-pairs", Kind: sim.IntParam, Default: 10},
		sim.Param{Name: "shift", Key: "shift-minutes", Kind: sim.DurationParam, Default: 480},
		sim.Metric{Name: "assembled", Kind: sim.CounterMetric, Description: "Assemblies completed"},
		sim.Metric{Name: "partsWait", Kind: sim.SeriesMetric, Description: "Wait for parts"},
		sim.Metric{Name: "screwsWait", Kind: sim.SeriesMetric, Description: "Wait for screws"},
		sim.Metric{Name: "machineWait", Kind: sim.SeriesMetric, Description: "Wait for the machine"},
		sim.Metric{Name: "fixedWait", Kind: sim.SeriesMetric, Description: "Wait for clamped pairs"},
		sim.Resource{Name: "machine", Description: "Machining station"},
		sim.Resource{Name: "partsBin", Description: "Parts pallet"},
		sim.Resource{Name: "screwBox", Description: "Screw box"},
		sim.Resource{Name: "fixedBin", Description: "Clamped pairs"},
	)
}

type assemblyCell struct {
	in      *sim.Instance
	rng     *rand.Rand
	shift   float64
	machine *des.Resource
	parts   *des.Container
	screws  *des.Container
	fixed   *des.Container
}

func runAssemblyCell(in *sim.Instance, p *des.Proc) {
	env := p.Env()
	a := &assemblyCell{in: in, rng: in.Rand(), shift: in.Duration("shift")}
	a.machine = des.NewResource(env, 1)
	// Pallets hold 60 parts; the screw box starts at its maximum refill.
	a.parts = des.NewContainer(env, 60, 60)
	a.screws = des.NewContainer(env, 1010, 0)
	a.fixed = des.NewContainer(env, 0, 0)

	in.BindResource("machine", a.machine)
	in.BindResource("partsBin", a.parts)
	in.BindResource("screwBox", a.screws)
	in.BindResource("fixedBin", a.fixed)

	env.Process(a.resupply)
	for i := 1; i <= int(in.Int("workerPairs")); i++ {
		i := i
		env.Process(func(wp *des.Proc) { a.clampAndMachine(wp, i) })
		env.Process(func(wp *des.Proc) { a.join(wp, i) })
	}
}

// resupply tops the pallet back to 60 parts and the screw box to a random
// 990-1010 screws, roughly every 40 minutes, until the shift ends.
func (a *assemblyCell) resupply(p *des.Proc) {
	env := p.Env()
	for {
		p.Timeout(dist.PositiveNormal(a.rng, 40, 3))
		if env.Now() >= a.shift {
			return
		}
		if d := 60 - a.parts.Level(); d > 0 {
			a.parts.Put(p, d)
		}
		target := dist.IntBetween(a.rng, 990, 1010)
		if d := target - a.screws.Level(); d > 0 {
			a.screws.Put(p, d)
		}
		a.in.Logf(p, "supply run", "refills parts and screws")
	}
}

func (a *assemblyCell) clampAndMachine(p *des.Proc, id int) {
	env := p.Env()
	actor := fmt.Sprintf("clamper %d", id)
	for env.Now() < a.shift {
		partsStart := env.Now()
		a.parts.Get(p, 2)
		a.in.Series("partsWait").Observe(env.Now() - partsStart)
		a.in.Logf(p, actor, "picks up a pair of parts")

		// Clamping takes about 40 seconds.
		p.Timeout(dist.PositiveNormal(a.rng, 40.0/60, 5.0/60))
		a.in.Logf(p, actor, "clamps the pair")

		machineStart := env.Now()
		a.machine.Acquire(p)
		a.in.Series("machineWait").Observe(env.Now() - machineStart)

		a.in.Logf(p, actor, "starts machining")
		p.Timeout(3)
		a.machine.Release()
		a.in.Logf(p, actor, "finishes machining")

		a.fixed.Put(p, 2)
	}
}

func (a *assemblyCell) join(p *des.Proc, id int) {
	env := p.Env()
	actor := fmt.Sprintf("joiner %d", id)
	for env.Now() < a.shift {
		fixedStart := env.Now()
		a.fixed.Get(p, 2)
		a.in.Series("fixedWait").Observe(env.Now() - fixedStart)
		a.in.Logf(p, actor, "receives a machined pair")

		screwsStart := env.Now()
		a.screws.Get(p, 4)
		a.in.Series("screwsWait").Observe(env.Now() - screwsStart)
		a.in.Logf(p, actor, "receives four screws")

		// Joining takes between 3.5 and 4 minutes, uniformly.
		p.Timeout(dist.Uniform(a.rng, 3.5, 4))
		a.in.Counter("assembled").Inc()
		a.in.Logf(p, actor, "joins the pair")
	}
}
