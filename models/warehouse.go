package models

import (
	"fmt"
	"math/rand"

	"github.com/enzo-santos-ufpa/sd/sim"
	"github.com/enzo-santos-ufpa/sd/sim/des"
	"github.com/enzo-santos-ufpa/sd/sim/dist"
)

// DistributionCenter models inbound trucks unloading into a bounded depot
// while a fleet of vans loads fixed-size consignments and delivers them.
// Truck arrivals and unload/load rates are configurable; the clock runs in
// hours.
func DistributionCenter() (*sim.Schema, error) {
	return sim.New("distribution-center", sim.Hours, runDistributionCenter,
		sim.Param{Name: "trucks", Key: "trucks", Kind: sim.IntParam, Default: 20},
		sim.Param{Name: "docks", Key: "docks", Kind: sim.IntParam, Default: 2},
		sim.Param{Name: "vans", Key: "vans", Kind: sim.IntParam, Default: 4},
		sim.Param{Name: "truckSize", Key: "truck-size", Kind: sim.IntParam, Default: 60},
		sim.Param{Name: "vanSize", Key: "van-size", Kind: sim.IntParam, Default: 15},
		sim.Param{Name: "depotSize", Key: "depot-size", Kind: sim.IntParam, Default: 200},
		sim.Param{Name: "unloadRate", Key: "unload-rate", Kind: sim.FloatParam, Default: 30.0},
		sim.Param{Name: "loadRate", Key: "load-rate", Kind: sim.FloatParam, Default: 40.0},
		sim.Param{Name: "truckInterval", Key: "truck-interval", Kind: sim.DurationParam, Default: 0.5},
		sim.Metric{Name: "dispatched", Kind: sim.CounterMetric, Description: "Van loads dispatched"},
		sim.Metric{Name: "dockWait", Kind: sim.SeriesMetric, Description: "Truck wait for a dock"},
		sim.Metric{Name: "unloadTime", Kind: sim.SeriesMetric, Description: "Truck unloading"},
		sim.Metric{Name: "goodsWait", Kind: sim.SeriesMetric, Description: "Van wait for goods"},
		sim.Metric{Name: "loadTime", Kind: sim.SeriesMetric, Description: "Van loading"},
		sim.Resource{Name: "dockRow", Description: "Docks"},
		sim.Resource{Name: "depot", Description: "Depot"},
	)
}

type distributionCenter struct {
	in    *sim.Instance
	rng   *rand.Rand
	docks *des.Resource
	depot *des.Container
}

func runDistributionCenter(in *sim.Instance, p *des.Proc) {
	env := p.Env()
	d := &distributionCenter{in: in, rng: in.Rand()}
	d.docks = des.NewResource(env, int(in.Int("docks")))
	d.depot = des.NewContainer(env, 0, int(in.Int("depotSize")))

	in.BindResource("dockRow", d.docks)
	in.BindResource("depot", d.depot)

	for v := 1; v <= int(in.Int("vans")); v++ {
		v := v
		env.Process(func(vp *des.Proc) { d.van(vp, v) })
	}

	interval := in.Duration("truckInterval")
	for t := 1; t <= int(in.Int("trucks")); t++ {
		t := t
		env.Process(func(tp *des.Proc) { d.truck(tp, t) })
		p.Timeout(dist.Exponential(d.rng, interval))
	}
}

func (d *distributionCenter) truck(p *des.Proc, id int) {
	env := p.Env()
	actor := fmt.Sprintf("truck %d", id)
	d.in.Logf(p, actor, "arrives")

	dockStart := env.Now()
	d.docks.Acquire(p)
	d.in.Series("dockWait").Observe(env.Now() - dockStart)

	d.in.Logf(p, actor, "docks and unloads")
	unloadStart := env.Now()
	size := int(d.in.Int("truckSize"))
	p.Timeout(float64(size) / d.in.Float("unloadRate"))
	// Cargo enters the depot only once fully unloaded; a full depot keeps
	// the truck on the dock.
	d.depot.Put(p, size)
	d.in.Series("unloadTime").Observe(env.Now() - unloadStart)

	d.docks.Release()
	d.in.Logf(p, actor, "leaves")
}

func (d *distributionCenter) van(p *des.Proc, id int) {
	env := p.Env()
	actor := fmt.Sprintf("van %d", id)
	size := int(d.in.Int("vanSize"))
	for {
		goodsStart := env.Now()
		d.depot.Get(p, size)
		d.in.Series("goodsWait").Observe(env.Now() - goodsStart)

		d.in.Logf(p, actor, "loads a consignment")
		loadStart := env.Now()
		p.Timeout(float64(size) / d.in.Float("loadRate"))
		d.in.Series("loadTime").Observe(env.Now() - loadStart)

		d.in.Counter("dispatched").Inc()
		d.in.Logf(p, actor, "departs")

		// Delivery round trip before the next load.
		p.Timeout(dist.Uniform(d.rng, 0.5, 1.5))
	}
}
