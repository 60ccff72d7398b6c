package models

import (
	"fmt"
	"math/rand"

	"github.com/enzo-santos-ufpa/sd/sim"
	"github.com/enzo-santos-ufpa/sd/sim/des"
	"github.com/enzo-santos-ufpa/sd/sim/dist"
)

type staffMember struct {
	id int
}

type glass struct {
	id    int
	clean bool
}

// EspressoBar models a counter-service bar. Customers grab a seat, order
// between one and four drinks, and each drink ties up a staff member for
// order taking, glass handling (washing dirty glasses at a small sink,
// chilling in the freezer) and serving.
func EspressoBar() (*sim.Schema, error) {
	return sim.New("espresso-bar", sim.Minutes, runEspressoBar,
		sim.Param{Name: "staff", Key: "staff", Kind: sim.IntParam},
		sim.Param{Name: "seats", Key: "seats", Kind: sim.IntParam},
		sim.Param{Name: "glasses", Key: "glasses", Kind: sim.IntParam},
		sim.Param{Name: "sinkSlots", Key: "sink-slots", Kind: sim.IntParam},
		sim.Param{Name: "customers", Key: "customers", Kind: sim.IntParam, Default: 40},
		sim.Metric{Name: "drinks", Kind: sim.CounterMetric, Description: "Drinks consumed"},
		sim.Metric{Name: "stay", Kind: sim.SeriesMetric, Description: "Customer stay"},
		sim.Metric{Name: "seatWait", Kind: sim.SeriesMetric, Description: "Wait for a seat"},
		sim.Metric{Name: "orderWait", Kind: sim.SeriesMetric, Description: "Wait to order"},
		sim.Metric{Name: "serveWait", Kind: sim.SeriesMetric, Description: "Wait to be served"},
		sim.Metric{Name: "prepTime", Kind: sim.SeriesMetric, Description: "Drink preparation"},
		sim.Resource{Name: "staffPool", Description: "Staff"},
		sim.Resource{Name: "glassShelf", Description: "Glasses"},
		sim.Resource{Name: "seatRow", Description: "Seats"},
		sim.Resource{Name: "sinkSlot", Description: "Sink slots"},
	)
}

type espressoBar struct {
	in      *sim.Instance
	rng     *rand.Rand
	staff   *des.Store[*staffMember]
	glasses *des.Store[*glass]
	seats   *des.Resource
	sink    *des.Resource
}

func runEspressoBar(in *sim.Instance, p *des.Proc) {
	env := p.Env()
	b := &espressoBar{in: in, rng: in.Rand()}

	b.staff = des.NewStore[*staffMember](env, int(in.Int("staff")))
	for i := 0; i < int(in.Int("staff")); i++ {
		b.staff.Put(p, &staffMember{id: i + 1})
	}
	b.glasses = des.NewStore[*glass](env, int(in.Int("glasses")))
	for i := 0; i < int(in.Int("glasses")); i++ {
		b.glasses.Put(p, &glass{id: i + 1, clean: true})
	}
	b.seats = des.NewResource(env, int(in.Int("seats")))
	b.sink = des.NewResource(env, int(in.Int("sinkSlots")))

	in.BindResource("staffPool", b.staff)
	in.BindResource("glassShelf", b.glasses)
	in.BindResource("seatRow", b.seats)
	in.BindResource("sinkSlot", b.sink)

	// Customers arrive on average every 4 minutes, exponentially
	// distributed, until the planned head count is reached.
	for id := 1; id <= int(in.Int("customers")); id++ {
		id := id
		env.Process(func(cp *des.Proc) { b.customer(cp, id) })
		p.Timeout(dist.Exponential(b.rng, 4))
	}
}

func (b *espressoBar) customer(p *des.Proc, id int) {
	env := p.Env()
	actor := fmt.Sprintf("customer %d", id)
	b.in.Logf(p, actor, "arrives")
	arrived := env.Now()

	var myGlass *glass

	seatStart := env.Now()
	b.seats.Acquire(p)
	b.in.Series("seatWait").Observe(env.Now() - seatStart)

	// One drink with probability 0.3, two 0.45, three 0.2, four 0.05.
	drinks := dist.WeightedChoice(b.rng, []int{1, 2, 3, 4}, []float64{0.30, 0.45, 0.20, 0.05})
	b.in.Logf(p, actor, "takes a seat, plans %d drinks", drinks)

	for i := 1; i <= drinks; i++ {
		b.in.Logf(p, actor, "order %d/%d: waits for free staff", i, drinks)
		orderStart := env.Now()
		order := env.Process(func(q *des.Proc) { b.takeOrder(q, i, id) })
		p.Wait(order)
		b.in.Series("orderWait").Observe(env.Now() - orderStart)

		b.in.Logf(p, actor, "order %d/%d: waits for the drink", i, drinks)
		serveStart := env.Now()
		var served *glass
		prep := env.Process(func(q *des.Proc) { served = b.prepare(q, myGlass) })
		p.Wait(prep)
		b.in.Series("serveWait").Observe(env.Now() - serveStart)
		if myGlass == nil {
			myGlass = served
		}

		// Customers take about 3 minutes per drink.
		b.in.Logf(p, actor, "order %d/%d: drinks", i, drinks)
		p.Timeout(dist.PositiveNormal(b.rng, 3, 1))
		b.in.Counter("drinks").Inc()
	}
	b.seats.Release()

	b.in.Logf(p, actor, "leaves")
	if myGlass != nil {
		g := myGlass
		env.Process(func(q *des.Proc) { b.clearTable(q, g, id) })
	}
	b.in.Series("stay").Observe(env.Now() - arrived)
}

func (b *espressoBar) takeOrder(p *des.Proc, orderID, customerID int) {
	w := b.staff.Get(p)
	actor := fmt.Sprintf("staff %d", w.id)
	// Taking an order: 0.7 min with 0.3 min deviation.
	b.in.Logf(p, actor, "takes order %d from customer %d", orderID, customerID)
	p.Timeout(dist.PositiveNormal(b.rng, 0.7, 0.3))
	b.staff.Put(p, w)
}

func (b *espressoBar) prepare(p *des.Proc, reuse *glass) *glass {
	env := p.Env()
	w := b.staff.Get(p)
	actor := fmt.Sprintf("staff %d", w.id)
	start := env.Now()

	g := reuse
	if g == nil {
		g = b.glasses.Get(p)
		b.in.Logf(p, actor, "takes glass %d from the shelf", g.id)
	}
	if !g.clean {
		b.sink.Acquire(p)
		b.in.Logf(p, actor, "washes glass %d", g.id)
		b.sink.Release()
		g.clean = true
	}

	// Washing up and loading the freezer: 0.5 min with 0.1 min deviation.
	p.Timeout(dist.PositiveNormal(b.rng, 0.5, 0.1))
	b.in.Logf(p, actor, "puts glass %d in the freezer", g.id)
	b.staff.Put(p, w)

	// The glass must chill for 4 minutes before serving.
	b.in.Logf(p, actor, "waits for glass %d to chill", g.id)
	p.Timeout(4)
	b.in.Series("prepTime").Observe(env.Now() - start)

	b.in.Logf(p, actor, "serves the drink")
	g.clean = false
	return g
}

func (b *espressoBar) clearTable(p *des.Proc, g *glass, customerID int) {
	w := b.staff.Get(p)
	actor := fmt.Sprintf("staff %d", w.id)
	b.in.Logf(p, actor, "clears customer %d's glass", customerID)
	p.Timeout(dist.PositiveNormal(b.rng, 0.7, 0.3))
	b.glasses.Put(p, g)
	b.staff.Put(p, w)
}
