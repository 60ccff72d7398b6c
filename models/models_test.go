package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enzo-santos-ufpa/sd/sim"
)

// testDoc supplies the espresso bar's required parameters and shrinks every
// model's activity so the smoke runs stay small.
var testDoc = sim.Document{
	"espresso-bar": {
		"staff":      2,
		"seats":      6,
		"glasses":    20,
		"sink-slots": 6,
		"customers":  10,
	},
	"laundry": {
		"washers":   3,
		"baskets":   2,
		"dryers":    2,
		"customers": 10,
	},
	"clinic": {
		"patients": 15,
	},
	"assembly-cell": {
		"worker-pairs":  3,
		"shift-minutes": 120,
	},
	"distribution-center": {
		"trucks": 5,
	},
}

func TestRegister_RegistersEveryModel(t *testing.T) {
	r := sim.NewRegistry()
	require.NoError(t, Register(r))

	assert.Equal(t, []string{
		"assembly-cell",
		"clinic",
		"distribution-center",
		"espresso-bar",
		"laundry",
	}, r.Sections())
}

func runModel(t *testing.T, section string) (*sim.Instance, *sim.Report) {
	t.Helper()
	r := sim.NewRegistry()
	require.NoError(t, Register(r))
	s := r.Lookup(section)
	require.NotNil(t, s)

	in, err := sim.Instantiate(s, testDoc, sim.WithSeed(42))
	require.NoError(t, err)
	report, err := sim.Run(s, in)
	require.NoError(t, err)
	require.NotNil(t, report)
	return in, report
}

func TestEspressoBar_RunToQuiescence(t *testing.T) {
	in, report := runModel(t, "espresso-bar")

	// Every customer drinks at least once and leaves.
	assert.GreaterOrEqual(t, in.Counter("drinks").Value(), int64(10))
	assert.Equal(t, 10, in.Series("stay").Count())
	assert.Contains(t, report.Render(), "Drinks consumed")
}

func TestLaundry_RunToQuiescence(t *testing.T) {
	in, report := runModel(t, "laundry")

	assert.Equal(t, int64(10), in.Counter("loads").Value())
	assert.Equal(t, 10, in.Series("stay").Count())
	// Stay covers at least the fixed wash cycle plus dryer loading.
	assert.Greater(t, in.Series("stay").Min(), 25.0)
	assert.Contains(t, report.Render(), "Wait for a washer")
}

func TestClinic_RunToQuiescence(t *testing.T) {
	in, report := runModel(t, "clinic")

	assert.Equal(t, int64(15), in.Counter("seen").Value())
	assert.Equal(t, 15, in.Series("stay").Count())
	assert.Contains(t, report.Render(), "Wait for a doctor")
}

func TestAssemblyCell_RunToQuiescence(t *testing.T) {
	in, report := runModel(t, "assembly-cell")

	// A two-hour shift with three worker pairs completes plenty of joins.
	assert.Greater(t, in.Counter("assembled").Value(), int64(0))
	assert.Greater(t, in.Series("partsWait").Count(), 0)
	assert.Contains(t, report.Render(), "Assemblies completed")
}

func TestDistributionCenter_RunToQuiescence(t *testing.T) {
	in, report := runModel(t, "distribution-center")

	// Five trucks of 60 volumes feed twenty 15-volume van loads.
	assert.Equal(t, int64(20), in.Counter("dispatched").Value())
	assert.Equal(t, 5, in.Series("unloadTime").Count())
	assert.Contains(t, report.Render(), "Van loads dispatched")
}

func TestModels_SameSeedSameOutcome(t *testing.T) {
	first, _ := runModel(t, "espresso-bar")
	second, _ := runModel(t, "espresso-bar")

	assert.Equal(t, first.Counter("drinks").Value(), second.Counter("drinks").Value())
	assert.Equal(t, first.Series("stay").Values(), second.Series("stay").Values())
}
