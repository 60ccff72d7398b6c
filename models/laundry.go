package models

import (
	"fmt"
	"math/rand"

	"github.com/enzo-santos-ufpa/sd/sim"
	"github.com/enzo-santos-ufpa/sd/sim/des"
	"github.com/enzo-santos-ufpa/sd/sim/dist"
)

// Laundry models a self-service laundry: customers wash for a fixed 25
// minutes, unload into a shared basket, carry it over and run the dryer.
func Laundry() (*sim.Schema, error) {
	return sim.New("laundry", sim.Minutes, runLaundry,
		sim.Param{Name: "washers", Key: "washers", Kind: sim.IntParam},
		sim.Param{Name: "baskets", Key: "baskets", Kind: sim.IntParam},
		sim.Param{Name: "dryers", Key: "dryers", Kind: sim.IntParam},
		sim.Param{Name: "customers", Key: "customers", Kind: sim.IntParam, Default: 30},
		sim.Metric{Name: "loads", Kind: sim.CounterMetric, Description: "Loads completed"},
		sim.Metric{Name: "stay", Kind: sim.SeriesMetric, Description: "Customer stay"},
		sim.Metric{Name: "washerWait", Kind: sim.SeriesMetric, Description: "Wait for a washer"},
		sim.Metric{Name: "basketWait", Kind: sim.SeriesMetric, Description: "Wait for a basket"},
		sim.Metric{Name: "dryerWait", Kind: sim.SeriesMetric, Description: "Wait for a dryer"},
		sim.Resource{Name: "washerRow", Description: "Washers"},
		sim.Resource{Name: "basketRack", Description: "Baskets"},
		sim.Resource{Name: "dryerRow", Description: "Dryers"},
	)
}

type laundry struct {
	in      *sim.Instance
	rng     *rand.Rand
	washers *des.Resource
	baskets *des.Resource
	dryers  *des.Resource
}

func runLaundry(in *sim.Instance, p *des.Proc) {
	env := p.Env()
	l := &laundry{in: in, rng: in.Rand()}
	l.washers = des.NewResource(env, int(in.Int("washers")))
	l.baskets = des.NewResource(env, int(in.Int("baskets")))
	l.dryers = des.NewResource(env, int(in.Int("dryers")))

	in.BindResource("washerRow", l.washers)
	in.BindResource("basketRack", l.baskets)
	in.BindResource("dryerRow", l.dryers)

	// Customers arrive on average every 10 minutes.
	for id := 1; id <= int(in.Int("customers")); id++ {
		id := id
		env.Process(func(cp *des.Proc) { l.customer(cp, id) })
		p.Timeout(dist.Exponential(l.rng, 10))
	}
}

func (l *laundry) customer(p *des.Proc, id int) {
	env := p.Env()
	actor := fmt.Sprintf("customer %02d", id)
	l.in.Logf(p, actor, "arrives at the laundry")
	arrived := env.Now()

	washerStart := env.Now()
	l.washers.Acquire(p)
	l.in.Series("washerWait").Observe(env.Now() - washerStart)

	// Wash cycle is a fixed 25 minutes.
	l.in.Logf(p, actor, "starts the washer")
	p.Timeout(25)
	l.in.Logf(p, actor, "washer done")
	l.washers.Release()

	basketStart := env.Now()
	l.baskets.Acquire(p)
	l.in.Series("basketWait").Observe(env.Now() - basketStart)

	l.in.Logf(p, actor, "unloads into a basket")
	p.Timeout(dist.Uniform(l.rng, 1, 4))
	l.in.Logf(p, actor, "carries the basket to the dryers")
	p.Timeout(dist.Uniform(l.rng, 3, 5))
	l.baskets.Release()

	dryerStart := env.Now()
	l.dryers.Acquire(p)
	l.in.Series("dryerWait").Observe(env.Now() - dryerStart)

	l.in.Logf(p, actor, "loads the dryer")
	p.Timeout(2)
	p.Timeout(dist.PositiveNormal(l.rng, 10, 4))
	l.in.Logf(p, actor, "drying done")
	l.dryers.Release()

	l.in.Counter("loads").Inc()
	l.in.Series("stay").Observe(env.Now() - arrived)
}
