/*
Copyright © 2019 the thermochem authors.
This file is part of thermochem.

thermochem is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

thermochem is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with thermochem.  If not, see <http://www.gnu.org/licenses/>.
*/

package solver

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/thermochem"
)

// File is the specification file read by Node.Init.
type File struct {
	// Temperature [K] and Pressure [Pa] of the initial state. They
	// default to the reference temperature and pressure.
	Temperature float64 `toml:"temperature"`
	Pressure    float64 `toml:"pressure"`

	Solver   Settings      `toml:"solver"`
	Elements []ElementSpec `toml:"elements"`
	Phases   []PhaseSpec   `toml:"phases"`
}

// Settings controls the minimisation.
type Settings struct {
	// MaxIterations is the largest number of Newton iterations in one
	// run. The default is 200.
	MaxIterations int `toml:"max_iterations"`

	// Tolerance is the convergence tolerance for the scaled residuals.
	// The default is 1e-10.
	Tolerance float64 `toml:"tolerance"`
}

// ElementSpec specifies an element (independent component).
type ElementSpec struct {
	Name string `toml:"name"`

	// MolarMass [kg/mol].
	MolarMass float64 `toml:"molar_mass"`
}

// PhaseSpec specifies a phase.
type PhaseSpec struct {
	Name string `toml:"name"`

	// Class is the phase class code: 'a' aqueous, 'g' gaseous,
	// 'l' liquid or 's' solid.
	Class string `toml:"class"`

	// Activity is the activity model of the solutes of an aqueous
	// phase; see package activity.
	Activity string `toml:"activity"`

	Species []SpeciesSpec `toml:"species"`
}

// SpeciesSpec specifies a species (dependent component).
type SpeciesSpec struct {
	Name   string  `toml:"name"`
	Charge float64 `toml:"charge"`

	// GibbsEnergy [J/mol], Entropy [J/(mol K)] and Volume [m³/mol] are
	// the standard-state properties at the reference temperature and
	// pressure.
	GibbsEnergy float64 `toml:"gibbs_energy"`
	Entropy     float64 `toml:"entropy"`
	Volume      float64 `toml:"volume"`

	// Amount is the initial amount [mol].
	Amount float64 `toml:"amount"`

	// Composition maps element names to the number of atoms.
	Composition map[string]float64 `toml:"composition"`
}

// ReadFile decodes and validates a specification file, filling in
// default values.
func ReadFile(r io.Reader) (*File, error) {
	var f File
	md, err := toml.DecodeReader(r, &f)
	if err != nil {
		return nil, fmt.Errorf("solver: decoding specification: %v", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("solver: unknown keys in specification: %s", strings.Join(keys, ", "))
	}
	if f.Temperature == 0 {
		f.Temperature = thermochem.ReferenceTemperature
	}
	if f.Pressure == 0 {
		f.Pressure = thermochem.ReferencePressure
	}
	if f.Solver.MaxIterations == 0 {
		f.Solver.MaxIterations = 200
	}
	if f.Solver.Tolerance == 0 {
		f.Solver.Tolerance = 1.0e-10
	}
	return &f, f.validate()
}

func (f *File) validate() error {
	if f.Temperature <= 0 || f.Pressure <= 0 {
		return fmt.Errorf("solver: temperature and pressure must be positive")
	}
	if f.Solver.MaxIterations < 0 || f.Solver.Tolerance < 0 {
		return fmt.Errorf("solver: max_iterations and tolerance must not be negative")
	}
	if len(f.Elements) == 0 {
		return fmt.Errorf("solver: the specification has no elements")
	}
	if len(f.Phases) == 0 {
		return fmt.Errorf("solver: the specification has no phases")
	}
	elements := make(map[string]bool)
	for _, e := range f.Elements {
		if e.Name == "" || e.MolarMass <= 0 {
			return fmt.Errorf("solver: element '%s' needs a name and a positive molar mass", e.Name)
		}
		if elements[e.Name] {
			return fmt.Errorf("solver: duplicate element '%s'", e.Name)
		}
		elements[e.Name] = true
	}
	species := make(map[string]bool)
	for _, p := range f.Phases {
		if _, err := phaseKind(p.Class); err != nil {
			return err
		}
		if len(p.Species) == 0 {
			return fmt.Errorf("solver: phase '%s' has no species", p.Name)
		}
		for _, s := range p.Species {
			if species[s.Name] {
				return fmt.Errorf("solver: duplicate species '%s'", s.Name)
			}
			species[s.Name] = true
			if s.Amount < 0 {
				return fmt.Errorf("solver: species '%s' has a negative amount", s.Name)
			}
			if len(s.Composition) == 0 && s.Charge == 0 {
				return fmt.Errorf("solver: species '%s' has no composition", s.Name)
			}
			for e := range s.Composition {
				if !elements[e] {
					return fmt.Errorf("solver: species '%s' contains unknown element '%s'", s.Name, e)
				}
			}
		}
	}
	return nil
}

// phaseKind returns the kind of phase for a class code.
func phaseKind(class string) (thermochem.PhaseKind, error) {
	switch class {
	case "a":
		return thermochem.Aqueous, nil
	case "g":
		return thermochem.Gaseous, nil
	case "l":
		return thermochem.Liquid, nil
	case "s":
		return thermochem.Solid, nil
	default:
		return thermochem.Unknown, fmt.Errorf("solver: invalid phase class '%s'; valid options are a, g, l and s", class)
	}
}
