package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/enzo-santos-ufpa/sd/models"
	"github.com/enzo-santos-ufpa/sd/sim"
)

var logLevel string

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "sd",
	Short: "Discrete-event simulation models with declarative configuration",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// registry holds every bundled model, built once at startup. A malformed
// schema or duplicate section key aborts immediately.
func registry() *sim.Registry {
	r := sim.NewRegistry()
	if err := models.Register(r); err != nil {
		logrus.Fatalf("Registering models: %v", err)
	}
	return r
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Log verbosity (debug, info, warning, error)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
