// Package models bundles the example simulation models: an espresso bar, a
// self-service laundry, a walk-in clinic, an assembly cell and a
// distribution center. Each is plain client code against the sim framework;
// the framework itself knows nothing about them.
package models

import "github.com/enzo-santos-ufpa/sd/sim"

// Register builds every bundled model schema and adds it to r.
func Register(r *sim.Registry) error {
	builders := []func() (*sim.Schema, error){
		EspressoBar,
		Laundry,
		Clinic,
		AssemblyCell,
		DistributionCenter,
	}
	for _, build := range builders {
		s, err := build()
		if err != nil {
			return err
		}
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}
