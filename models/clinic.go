package models

import (
	"fmt"
	"math/rand"

	"github.com/enzo-santos-ufpa/sd/sim"
	"github.com/enzo-santos-ufpa/sd/sim/des"
	"github.com/enzo-santos-ufpa/sd/sim/dist"
)

// Clinic models a walk-in medical clinic: patients register with a
// receptionist, see a doctor, then return to the desk to pay and book a
// follow-up.
func Clinic() (*sim.Schema, error) {
	return sim.New("clinic", sim.Minutes, runClinic,
		sim.Param{Name: "receptionists", Key: "receptionists", Kind: sim.IntParam, Default: 2},
		sim.Param{Name: "doctors", Key: "doctors", Kind: sim.IntParam, Default: 3},
		sim.Param{Name: "patients", Key: "patients", Kind: sim.IntParam, Default: 50},
		sim.Metric{Name: "seen", Kind: sim.CounterMetric, Description: "Patients seen"},
		sim.Metric{Name: "stay", Kind: sim.SeriesMetric, Description: "Patient stay"},
		sim.Metric{Name: "deskWait", Kind: sim.SeriesMetric, Description: "Wait for the desk"},
		sim.Metric{Name: "doctorWait", Kind: sim.SeriesMetric, Description: "Wait for a doctor"},
		sim.Resource{Name: "desk", Description: "Receptionists"},
		sim.Resource{Name: "doctorPool", Description: "Doctors"},
	)
}

type clinic struct {
	in            *sim.Instance
	rng           *rand.Rand
	receptionists *des.Resource
	doctors       *des.Resource
}

func runClinic(in *sim.Instance, p *des.Proc) {
	env := p.Env()
	c := &clinic{in: in, rng: in.Rand()}
	c.receptionists = des.NewResource(env, int(in.Int("receptionists")))
	c.doctors = des.NewResource(env, int(in.Int("doctors")))

	in.BindResource("desk", c.receptionists)
	in.BindResource("doctorPool", c.doctors)

	// Patients arrive on average every 3 minutes.
	for id := 1; id <= int(in.Int("patients")); id++ {
		id := id
		c.in.Logf(p, fmt.Sprintf("patient %02d", id), "arrives at the clinic")
		env.Process(func(pp *des.Proc) { c.patient(pp, id) })
		p.Timeout(dist.Exponential(c.rng, 3))
	}
}

func (c *clinic) patient(p *des.Proc, id int) {
	env := p.Env()
	actor := fmt.Sprintf("patient %02d", id)
	arrived := env.Now()

	deskStart := env.Now()
	c.receptionists.Acquire(p)
	c.in.Series("deskWait").Observe(env.Now() - deskStart)

	c.in.Logf(p, actor, "fills in the intake form")
	p.Timeout(dist.Exponential(c.rng, 10))
	c.in.Logf(p, actor, "finishes the intake form")
	c.receptionists.Release()

	doctorStart := env.Now()
	c.doctors.Acquire(p)
	c.in.Series("doctorWait").Observe(env.Now() - doctorStart)

	c.in.Logf(p, actor, "starts the consultation")
	p.Timeout(dist.Exponential(c.rng, 20))
	c.in.Logf(p, actor, "finishes the consultation")
	c.doctors.Release()

	// Back to the desk for payment and scheduling.
	c.receptionists.Acquire(p)
	c.in.Logf(p, actor, "pays and books a follow-up")
	p.Timeout(dist.Uniform(c.rng, 1, 4))
	c.receptionists.Release()

	c.in.Logf(p, actor, "leaves the clinic")
	c.in.Counter("seen").Inc()
	c.in.Series("stay").Observe(env.Now() - arrived)
}
