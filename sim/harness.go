package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/enzo-santos-ufpa/sd/sim/des"
)

// Run executes one simulation: a fresh engine environment, the schema's
// entry point as the sole root process, run to quiescence, then the report.
// The model must terminate its own activity (a fixed arrival count or an
// internal horizon); the harness imposes none. An engine failure returns a
// *RunError and no report.
func Run(s *Schema, in *Instance) (*Report, error) {
	return run(s, in, math.Inf(1))
}

// RunUntil is Run with a virtual-time cap, for callers that want to cut a
// run short (the CLI --horizon flag). The cap belongs to the caller, not to
// the harness contract.
func RunUntil(s *Schema, in *Instance, horizon float64) (*Report, error) {
	return run(s, in, horizon)
}

func run(s *Schema, in *Instance, horizon float64) (*Report, error) {
	env := des.NewEnvironment()
	env.Process(func(p *des.Proc) {
		s.entry(in, p)
	})

	logrus.Debugf("model %q: starting run", s.section)
	var err error
	if math.IsInf(horizon, 1) {
		err = env.Run()
	} else {
		err = env.RunUntil(horizon)
	}
	if err != nil {
		return nil, &RunError{Section: s.section, Err: err}
	}
	logrus.Debugf("model %q: drained at t=%.2f", s.section, env.Now())

	return buildReport(s, in, env.Now()), nil
}
