package sim

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// metricResult is the frozen state of one metric at the end of a run.
type metricResult struct {
	desc  string
	kind  MetricKind
	total int64 // counter value
	n     int   // series observation count
	mean  float64
	stdev float64
	min   float64
	max   float64
}

// resourceResult is the final occupancy of one bound scheduling primitive.
type resourceResult struct {
	desc     string
	bound    bool
	current  int
	capacity int
}

// Report is the rendered outcome of one completed run: every metric in
// declaration order plus the final occupancy of bound resources.
// Rendering is deterministic given final metric state.
type Report struct {
	section   string
	unit      TimeUnit
	endTime   float64
	metrics   []metricResult
	resources []resourceResult
}

func buildReport(s *Schema, in *Instance, endTime float64) *Report {
	r := &Report{section: s.section, unit: s.unit, endTime: endTime}
	for _, m := range s.metrics {
		res := metricResult{desc: m.Description, kind: m.Kind}
		switch m.Kind {
		case CounterMetric:
			res.total = in.counters[m.Name].Value()
		case SeriesMetric:
			ser := in.series[m.Name]
			res.n = ser.Count()
			res.mean = ser.Mean()
			res.stdev = ser.Stdev()
			res.min = ser.Min()
			res.max = ser.Max()
		}
		r.metrics = append(r.metrics, res)
	}
	for _, decl := range s.resources {
		res := resourceResult{desc: decl.Description}
		if probe, ok := in.probes[decl.Name]; ok {
			res.bound = true
			res.current = probe.Current()
			res.capacity = probe.Capacity()
		}
		r.resources = append(r.resources, res)
	}
	return r
}

// Render returns the report as display text.
func (r *Report) Render() string {
	var sb strings.Builder

	width := len("Simulated time")
	for _, m := range r.metrics {
		if len(m.desc) > width {
			width = len(m.desc)
		}
	}
	for _, res := range r.resources {
		if len(res.desc) > width {
			width = len(res.desc)
		}
	}

	fmt.Fprintf(&sb, "=== %s report ===\n", r.section)
	fmt.Fprintf(&sb, "%-*s : %.2f (%s)\n", width, "Simulated time", r.endTime, formatSpan(r.endTime, r.unit))
	for _, m := range r.metrics {
		switch m.kind {
		case CounterMetric:
			fmt.Fprintf(&sb, "%-*s : %d\n", width, m.desc, m.total)
		case SeriesMetric:
			if m.n == 0 {
				fmt.Fprintf(&sb, "%-*s : no observations\n", width, m.desc)
				continue
			}
			fmt.Fprintf(&sb, "%-*s : n=%d, mean=%.2f (%s) ± %.2f, min=%s, max=%s\n",
				width, m.desc, m.n,
				m.mean, formatSpan(m.mean, r.unit), m.stdev,
				formatSpan(m.min, r.unit), formatSpan(m.max, r.unit))
		}
	}
	if len(r.resources) > 0 {
		sb.WriteString("Resources:\n")
		for _, res := range r.resources {
			if !res.bound {
				fmt.Fprintf(&sb, "  %-*s : not bound\n", width-2, res.desc)
				continue
			}
			if res.capacity > 0 {
				fmt.Fprintf(&sb, "  %-*s : %d/%d\n", width-2, res.desc, res.current, res.capacity)
			} else {
				fmt.Fprintf(&sb, "  %-*s : %d\n", width-2, res.desc, res.current)
			}
		}
	}
	return sb.String()
}

// Print writes the rendered report to w.
func (r *Report) Print(w io.Writer) {
	fmt.Fprint(w, r.Render())
}

// formatSpan renders a virtual-time quantity in the model's time unit as
// day/hour/minute/second tokens, e.g. "1d 3h 12m 5s".
func formatSpan(v float64, unit TimeUnit) string {
	seconds := v * 60
	if unit == Hours {
		seconds = v * 3600
	}
	neg := seconds < 0
	total := int64(math.Round(math.Abs(seconds)))

	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	secs := total % 60

	var tokens []string
	if days > 0 {
		tokens = append(tokens, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		tokens = append(tokens, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		tokens = append(tokens, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(tokens) == 0 {
		tokens = append(tokens, fmt.Sprintf("%ds", secs))
	}
	out := strings.Join(tokens, " ")
	if neg {
		return "-" + out
	}
	return out
}
