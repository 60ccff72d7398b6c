package sim

import "fmt"

// SchemaError reports a malformed model definition. It is raised when the
// schema is built, never at run time, so a broken model is rejected before
// any simulation attempt.
type SchemaError struct {
	Section string
	Detail  string
}

func (e *SchemaError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("invalid model schema: %s", e.Detail)
	}
	return fmt.Sprintf("invalid model schema %q: %s", e.Section, e.Detail)
}

func schemaErrf(section, format string, args ...any) *SchemaError {
	return &SchemaError{Section: section, Detail: fmt.Sprintf(format, args...)}
}

// MissingParameterError reports a required parameter whose configuration key
// is absent from the model's section and which declares no default. Key is
// the exact key the operator must add to the configuration document.
type MissingParameterError struct {
	Section string
	Param   string
	Key     string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("model %q: parameter %q: missing configuration key %q",
		e.Section, e.Param, e.Key)
}

// CoercionError reports a configuration value that cannot be converted to
// its parameter's declared kind.
type CoercionError struct {
	Section string
	Param   string
	Raw     any
	Kind    ParamKind
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("model %q: parameter %q: cannot coerce %v (%T) to %s",
		e.Section, e.Param, e.Raw, e.Raw, e.Kind)
}

// RunError reports an unrecovered failure while the engine was draining
// events. The run produced no report.
type RunError struct {
	Section string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("model %q: run failed: %v", e.Section, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
