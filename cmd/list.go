package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd prints every registered model with its configuration surface.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered models and their configuration keys",
	Run: func(cmd *cobra.Command, args []string) {
		r := registry()
		for _, section := range r.Sections() {
			s := r.Lookup(section)
			fmt.Printf("%s (time unit: %s)\n", section, s.Unit())
			for _, p := range s.Params() {
				if p.Default != nil {
					fmt.Printf("  param  %-16s %s (default %v)\n", p.Key, p.Kind, p.Default)
					continue
				}
				fmt.Printf("  param  %-16s %s (required)\n", p.Key, p.Kind)
			}
			for _, m := range s.Metrics() {
				fmt.Printf("  metric %s\n", m.Description)
			}
		}
	},
}
