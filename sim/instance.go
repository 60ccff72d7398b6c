package sim

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"
)

// ResourceProbe reads the occupancy of a scheduling primitive for the final
// report. *des.Resource, *des.Container and *des.Store all satisfy it.
type ResourceProbe interface {
	Current() int
	Capacity() int
}

// Instance is one configured model: resolved parameter values, live metric
// containers, and an injected pseudorandom generator. It is built without
// touching the scheduler and is owned by the harness for exactly one run.
type Instance struct {
	schema   *Schema
	values   Values
	counters map[string]*Counter
	series   map[string]*Series
	probes   map[string]ResourceProbe

	rng        *rand.Rand
	logEnabled bool
	logW       io.Writer
}

// Option adjusts instantiation.
type Option func(*Instance)

// WithSeed seeds the instance's generator deterministically.
func WithSeed(seed int64) Option {
	return func(in *Instance) {
		in.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogEnabled turns the virtual-timestamped model log lines on or off.
// They are off by default.
func WithLogEnabled(enabled bool) Option {
	return func(in *Instance) {
		in.logEnabled = enabled
	}
}

// WithLogWriter redirects model log lines. Defaults to os.Stdout.
func WithLogWriter(w io.Writer) Option {
	return func(in *Instance) {
		in.logW = w
	}
}

// Instantiate resolves the schema's parameters against the document,
// allocates every metric container at its neutral element, and attaches the
// pseudorandom generator. All resolution errors surface here, before any
// scheduling environment exists.
func Instantiate(s *Schema, doc Document, opts ...Option) (*Instance, error) {
	values, err := Resolve(s, doc)
	if err != nil {
		return nil, err
	}
	in := &Instance{
		schema:   s,
		values:   values,
		counters: make(map[string]*Counter),
		series:   make(map[string]*Series),
		probes:   make(map[string]ResourceProbe),
		logW:     os.Stdout,
	}
	for _, m := range s.metrics {
		switch m.Kind {
		case CounterMetric:
			in.counters[m.Name] = &Counter{}
		case SeriesMetric:
			in.series[m.Name] = &Series{}
		}
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.rng == nil {
		in.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return in, nil
}

// Schema returns the definition this instance was built from.
func (in *Instance) Schema() *Schema { return in.schema }

// Rand returns the instance's pseudorandom generator.
func (in *Instance) Rand() *rand.Rand { return in.rng }

// Int returns the resolved value of an integer parameter.
// It panics if name is not a declared integer parameter; a schema that
// built successfully cannot trip this at run time.
func (in *Instance) Int(name string) int64 {
	v, ok := in.values[name].(int64)
	if !ok {
		panic(fmt.Sprintf("model %q: no int parameter %q", in.schema.section, name))
	}
	return v
}

// Float returns the resolved value of a float parameter.
func (in *Instance) Float(name string) float64 {
	v, ok := in.values[name].(float64)
	if !ok {
		panic(fmt.Sprintf("model %q: no float parameter %q", in.schema.section, name))
	}
	return v
}

// Str returns the resolved value of a string parameter.
func (in *Instance) Str(name string) string {
	v, ok := in.values[name].(string)
	if !ok {
		panic(fmt.Sprintf("model %q: no string parameter %q", in.schema.section, name))
	}
	return v
}

// Duration returns the resolved value of a duration parameter, expressed in
// the schema's time unit.
func (in *Instance) Duration(name string) float64 {
	return in.Float(name)
}

// Counter returns the named counter metric container.
func (in *Instance) Counter(name string) *Counter {
	c, ok := in.counters[name]
	if !ok {
		panic(fmt.Sprintf("model %q: no counter metric %q", in.schema.section, name))
	}
	return c
}

// Series returns the named series metric container.
func (in *Instance) Series(name string) *Series {
	s, ok := in.series[name]
	if !ok {
		panic(fmt.Sprintf("model %q: no series metric %q", in.schema.section, name))
	}
	return s
}

// BindResource attaches a live scheduling primitive to a declared resource
// field so the report can show its final occupancy. Called by the entry
// process once the primitive exists.
func (in *Instance) BindResource(name string, probe ResourceProbe) {
	for _, r := range in.schema.resources {
		if r.Name == name {
			in.probes[name] = probe
			return
		}
	}
	panic(fmt.Sprintf("model %q: no resource field %q", in.schema.section, name))
}
