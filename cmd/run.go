package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/enzo-santos-ufpa/sd/sim"
)

var (
	configPath string  // Path to the YAML configuration document
	modelName  string  // Section key of the model to run
	seed       int64   // Seed for the model's pseudorandom generator
	showLog    bool    // Print virtual-timestamped model log lines
	horizon    float64 // Virtual-time cap; 0 runs to quiescence
)

// runCmd executes one run of one model.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation model to completion and report its metrics",
	Run: func(cmd *cobra.Command, args []string) {
		r := registry()
		schema := r.Lookup(modelName)
		if schema == nil {
			logrus.Fatalf("Unknown model %q; see `sd list`", modelName)
		}

		cfg, err := sim.Load(configPath)
		if err != nil {
			logrus.Fatalf("Loading configuration: %v", err)
		}

		opts := []sim.Option{
			sim.WithLogEnabled(showLog || cfg.General.Log),
		}
		if cmd.Flags().Changed("seed") {
			opts = append(opts, sim.WithSeed(seed))
		} else if cfg.General.Seed != nil {
			opts = append(opts, sim.WithSeed(*cfg.General.Seed))
		}

		instance, err := sim.Instantiate(schema, cfg.Models, opts...)
		if err != nil {
			logrus.Fatalf("Configuring model %q: %v", modelName, err)
		}

		limit := horizon
		if !cmd.Flags().Changed("horizon") && cfg.General.Horizon > 0 {
			limit = cfg.General.Horizon
		}

		var report *sim.Report
		if limit > 0 {
			report, err = sim.RunUntil(schema, instance, limit)
		} else {
			report, err = sim.Run(schema, instance)
		}
		if err != nil {
			logrus.Fatalf("Running model %q: %v", modelName, err)
		}
		report.Print(os.Stdout)
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "config.yaml", "Configuration document (a missing file is an empty document)")
	runCmd.Flags().StringVar(&modelName, "model", "", "Model to run (its configuration section key)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Deterministic seed (default: entropy)")
	runCmd.Flags().BoolVar(&showLog, "log", false, "Print model log lines")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Cap virtual time (0 = run to quiescence)")
	_ = runCmd.MarkFlagRequired("model")
}
