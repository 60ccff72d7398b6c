// Package sim is the declarative simulation framework: model schemas with
// parameter, metric and resource field declarations, configuration binding,
// metric bookkeeping, and the harness that drives one run against the
// sim/des engine and renders the collected metrics.
package sim

import (
	"github.com/enzo-santos-ufpa/sd/sim/des"
)

// TimeUnit is the unit the model's virtual clock is read in. It affects
// display formatting only, never scheduling arithmetic.
type TimeUnit string

const (
	Hours   TimeUnit = "hours"
	Minutes TimeUnit = "minutes"
)

func (u TimeUnit) valid() bool {
	return u == Hours || u == Minutes
}

// ParamKind is the declared value type of a parameter.
type ParamKind int

const (
	IntParam ParamKind = iota
	FloatParam
	StringParam
	// DurationParam is a numeric value interpreted in the schema's time
	// unit.
	DurationParam
)

func (k ParamKind) String() string {
	switch k {
	case IntParam:
		return "int"
	case FloatParam:
		return "float"
	case StringParam:
		return "string"
	case DurationParam:
		return "duration"
	default:
		return "unknown"
	}
}

// MetricKind is the declared container type of a metric.
type MetricKind int

const (
	// CounterMetric is a scalar count, reported as its raw value.
	CounterMetric MetricKind = iota
	// SeriesMetric accumulates numeric observations, reported with count,
	// mean and spread.
	SeriesMetric
)

// Field is one declared field of a model schema. The three variants are
// Param (bound from configuration), Metric (framework-initialized container)
// and Resource (left to the model's own entry process; retained only so the
// report can show final occupancy).
type Field interface {
	fieldName() string
}

// Param declares a field bound from the configuration document.
type Param struct {
	Name string
	// Key is the configuration key looked up inside the model's section.
	Key  string
	Kind ParamKind
	// Default, when non-nil, is used if Key is absent from the section.
	// It must be coercible to Kind; this is checked when the schema is
	// built.
	Default any
}

func (p Param) fieldName() string { return p.Name }

// Metric declares a framework-initialized metric container.
type Metric struct {
	Name        string
	Kind        MetricKind
	Description string
}

func (m Metric) fieldName() string { return m.Name }

// Resource declares a scheduling primitive owned by the model body. The
// framework never initializes it; the entry process binds the live primitive
// via Instance.BindResource so the report can show its final occupancy.
type Resource struct {
	Name        string
	Description string
}

func (r Resource) fieldName() string { return r.Name }

// EntryFunc is the model's root process, driven by the engine for one run.
type EntryFunc func(*Instance, *des.Proc)

// Schema is the immutable definition of one simulation model. Build it with
// New; a Schema that exists has already passed classification and
// validation.
type Schema struct {
	section   string
	unit      TimeUnit
	entry     EntryFunc
	params    []Param
	metrics   []Metric
	resources []Resource
}

// New builds a schema from its declared fields, classifying each field into
// exactly one of the parameter, metric or resource lists. All definition
// mistakes surface here as *SchemaError, before any instantiation or run.
func New(section string, unit TimeUnit, entry EntryFunc, fields ...Field) (*Schema, error) {
	if section == "" {
		return nil, schemaErrf("", "empty section key")
	}
	if !unit.valid() {
		return nil, schemaErrf(section, "invalid time unit %q (expected %q or %q)", unit, Hours, Minutes)
	}
	if entry == nil {
		return nil, schemaErrf(section, "nil entry process")
	}

	s := &Schema{section: section, unit: unit, entry: entry}
	names := make(map[string]bool)
	keys := make(map[string]bool)
	for _, f := range fields {
		name := f.fieldName()
		if name == "" {
			return nil, schemaErrf(section, "field with empty name")
		}
		if names[name] {
			return nil, schemaErrf(section, "duplicate field name %q", name)
		}
		names[name] = true

		switch d := f.(type) {
		case Param:
			if d.Key == "" {
				return nil, schemaErrf(section, "parameter %q: empty configuration key", d.Name)
			}
			if keys[d.Key] {
				return nil, schemaErrf(section, "parameter %q: duplicate configuration key %q", d.Name, d.Key)
			}
			keys[d.Key] = true
			if d.Default != nil {
				if _, err := coerce(d.Kind, d.Default); err != nil {
					return nil, schemaErrf(section, "parameter %q: default %v is not a valid %s", d.Name, d.Default, d.Kind)
				}
			}
			s.params = append(s.params, d)
		case Metric:
			if d.Description == "" {
				return nil, schemaErrf(section, "metric %q: empty description", d.Name)
			}
			s.metrics = append(s.metrics, d)
		case Resource:
			s.resources = append(s.resources, d)
		default:
			return nil, schemaErrf(section, "field %q: unknown declaration type %T", name, f)
		}
	}
	return s, nil
}

// MustNew is New but panics on error. Intended for package-level model
// definitions where a malformed schema is a programming error.
func MustNew(section string, unit TimeUnit, entry EntryFunc, fields ...Field) *Schema {
	s, err := New(section, unit, entry, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Section returns the configuration section key.
func (s *Schema) Section() string { return s.section }

// Unit returns the model's time unit.
func (s *Schema) Unit() TimeUnit { return s.unit }

// Params returns the parameter declarations in declaration order.
// The returned slice must not be modified.
func (s *Schema) Params() []Param { return s.params }

// Metrics returns the metric declarations in declaration order.
// The returned slice must not be modified.
func (s *Schema) Metrics() []Metric { return s.metrics }

// Resources returns the resource declarations in declaration order.
// The returned slice must not be modified.
func (s *Schema) Resources() []Resource { return s.resources }
