package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enzo-santos-ufpa/sd/sim/des"
)

func TestRun_ReportsSeriesCountAndMean(t *testing.T) {
	// GIVEN a model recording the observations [1.5, 2.0]
	entry := func(in *Instance, p *des.Proc) {
		p.Timeout(1.5)
		in.Series("waits").Observe(1.5)
		p.Timeout(0.5)
		in.Series("waits").Observe(2.0)
	}
	s, err := New("demo", Minutes, entry,
		Metric{Name: "waits", Kind: SeriesMetric, Description: "Wait times"},
	)
	require.NoError(t, err)
	in, err := Instantiate(s, Document{}, WithSeed(1))
	require.NoError(t, err)

	// WHEN the run drains
	report, err := Run(s, in)
	require.NoError(t, err)

	// THEN the report carries the description, count and mean
	out := report.Render()
	assert.Contains(t, out, "Wait times")
	assert.Contains(t, out, "n=2")
	assert.Contains(t, out, "mean=1.75")
}

func TestLogf_FormatsVirtualTimeActorMessage(t *testing.T) {
	// GIVEN a model logging at virtual time 42.0
	var buf bytes.Buffer
	entry := func(in *Instance, p *des.Proc) {
		p.Timeout(42.0)
		in.Logf(p, "server-1", "starts service")
	}
	s, err := New("demo", Minutes, entry)
	require.NoError(t, err)
	in, err := Instantiate(s, Document{},
		WithLogEnabled(true), WithLogWriter(&buf))
	require.NoError(t, err)

	// WHEN the run drains
	_, err = Run(s, in)
	require.NoError(t, err)

	// THEN the line uses fixed-precision virtual time
	assert.Equal(t, "42.00: server-1: starts service\n", buf.String())
}

func TestLogf_SuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	entry := func(in *Instance, p *des.Proc) {
		in.Logf(p, "actor", "message")
	}
	s, err := New("demo", Minutes, entry)
	require.NoError(t, err)
	in, err := Instantiate(s, Document{}, WithLogWriter(&buf))
	require.NoError(t, err)

	_, err = Run(s, in)
	require.NoError(t, err)

	assert.Empty(t, buf.String())
}

func TestRun_PanicBecomesRunErrorWithoutReport(t *testing.T) {
	// GIVEN a model that breaks mid-run
	entry := func(in *Instance, p *des.Proc) {
		p.Timeout(1)
		panic("resource invariant violated")
	}
	s, err := New("demo", Minutes, entry)
	require.NoError(t, err)
	in, err := Instantiate(s, Document{})
	require.NoError(t, err)

	// WHEN the run fails
	report, err := Run(s, in)

	// THEN there is a RunError and no partial report
	var re *RunError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "demo", re.Section)
	assert.Nil(t, report)
}

func TestRunUntil_CapsVirtualTime(t *testing.T) {
	entry := func(in *Instance, p *des.Proc) {
		for i := 0; i < 100; i++ {
			p.Timeout(1)
			in.Counter("steps").Inc()
		}
	}
	s, err := New("demo", Minutes, entry,
		Metric{Name: "steps", Kind: CounterMetric, Description: "Steps"},
	)
	require.NoError(t, err)
	in, err := Instantiate(s, Document{})
	require.NoError(t, err)

	_, err = RunUntil(s, in, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), in.Counter("steps").Value())
}

func TestRun_InstancesNeverShareMetricState(t *testing.T) {
	// GIVEN two instances of one schema and document
	entry := func(in *Instance, p *des.Proc) {
		in.Series("waits").Observe(1.0)
	}
	s, err := New("demo", Minutes, entry,
		Metric{Name: "waits", Kind: SeriesMetric, Description: "Wait times"},
	)
	require.NoError(t, err)
	doc := Document{}
	first, err := Instantiate(s, doc, WithSeed(7))
	require.NoError(t, err)
	second, err := Instantiate(s, doc, WithSeed(7))
	require.NoError(t, err)

	// WHEN both run independently
	_, err = Run(s, first)
	require.NoError(t, err)
	_, err = Run(s, second)
	require.NoError(t, err)

	// THEN each run observed only its own activity
	assert.NotSame(t, first.Series("waits"), second.Series("waits"))
	assert.Equal(t, 1, first.Series("waits").Count())
	assert.Equal(t, 1, second.Series("waits").Count())
}

func TestInstantiate_ResolutionFailsBeforeAnyScheduling(t *testing.T) {
	// GIVEN a schema whose required parameter is absent
	entry := func(in *Instance, p *des.Proc) {
		t.Error("entry process must never start")
	}
	s, err := New("demo", Minutes, entry,
		Param{Name: "capacity", Key: "capacity", Kind: IntParam},
	)
	require.NoError(t, err)

	// WHEN instantiating against an empty document
	in, err := Instantiate(s, Document{})

	// THEN resolution fails with no instance and no scheduling side effects
	var mpe *MissingParameterError
	require.ErrorAs(t, err, &mpe)
	assert.Nil(t, in)
}

func TestInstantiate_SameSeedSameDraws(t *testing.T) {
	s := demoSchema(t)
	a, err := Instantiate(s, Document{}, WithSeed(99))
	require.NoError(t, err)
	b, err := Instantiate(s, Document{}, WithSeed(99))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Rand().Int63(), b.Rand().Int63())
	}
}
