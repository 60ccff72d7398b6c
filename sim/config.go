package sim

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the model-facing part of the configuration: section key →
// configuration key → scalar. Read-only after load.
type Document map[string]map[string]any

// GeneralConfig is the model-independent part of the configuration file.
type GeneralConfig struct {
	// Seed, when set, makes the run reproducible.
	Seed *int64 `yaml:"seed"`
	// Log enables the virtual-timestamped model log lines.
	Log bool `yaml:"log"`
	// Horizon, when positive, caps the run's virtual time. Zero runs to
	// quiescence.
	Horizon float64 `yaml:"horizon"`
}

// File is one parsed configuration document.
type File struct {
	General GeneralConfig `yaml:"general"`
	Models  Document      `yaml:"models"`
}

// Load reads and parses a YAML configuration file. A missing file is not an
// error: it yields an empty document, in which every parameter must have a
// declared default.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{Models: Document{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if f.Models == nil {
		f.Models = Document{}
	}
	return &f, nil
}

// Values holds resolved parameter values keyed by declared field name.
// Ints are int64, floats and durations float64, strings string.
type Values map[string]any

// Resolve binds every parameter of the schema from its section of the
// document. An absent section is treated as empty, so every parameter must
// then carry a default. Resolution is pure: no parameter's value depends on
// another's, and resolving twice yields identical values.
func Resolve(s *Schema, doc Document) (Values, error) {
	section := doc[s.section]
	out := make(Values, len(s.params))
	for _, p := range s.params {
		raw, ok := section[p.Key]
		if !ok {
			if p.Default == nil {
				return nil, &MissingParameterError{Section: s.section, Param: p.Name, Key: p.Key}
			}
			raw = p.Default
		}
		v, err := coerce(p.Kind, raw)
		if err != nil {
			return nil, &CoercionError{Section: s.section, Param: p.Name, Raw: raw, Kind: p.Kind}
		}
		out[p.Name] = v
	}
	return out, nil
}

// coerce converts a raw configuration scalar to the parameter kind's
// canonical representation. YAML scalars arrive as int, float64, string or
// bool; defaults may additionally be any Go numeric.
func coerce(kind ParamKind, raw any) (any, error) {
	switch kind {
	case IntParam:
		return coerceInt(raw)
	case FloatParam, DurationParam:
		return coerceFloat(raw)
	case StringParam:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("not a string: %v", raw)
	default:
		return nil, fmt.Errorf("unknown parameter kind %d", kind)
	}
}

func coerceInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %v (%T)", raw, raw)
	}
}

func coerceFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not a number: %v (%T)", raw, raw)
	}
}
