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

package idealchem

import (
	"fmt"
	"sort"

	"github.com/spatialmodel/thermochem"
)

// ElementMolarMasses holds the molar masses [kg/mol] of the elements
// used by Database.
var ElementMolarMasses = map[string]float64{
	"H":  0.00100794,
	"C":  0.0120107,
	"O":  0.0159994,
	"Na": 0.02298977,
	"Cl": 0.035453,
	"Ca": 0.040078,
	"Fe": 0.055845,
}

// Entry is a species record in Database.
type Entry struct {
	Charge      float64
	Composition map[string]float64
	SpeciesData
}

// Database holds standard-state reference data at 298.15 K and 1 bar
// for common species.
var Database = map[string]Entry{
	// Aqueous species.
	"H2O(l)":  {0, map[string]float64{"H": 2, "O": 1}, SpeciesData{-237181.4, 69.95, 1.8068e-5}},
	"H+":      {1, map[string]float64{"H": 1}, SpeciesData{0, 0, 0}},
	"OH-":     {-1, map[string]float64{"O": 1, "H": 1}, SpeciesData{-157297.5, -10.71, -4.71e-6}},
	"H2(aq)":  {0, map[string]float64{"H": 2}, SpeciesData{17723, 57.7, 2.52e-5}},
	"O2(aq)":  {0, map[string]float64{"O": 2}, SpeciesData{16544, 108.95, 3.05e-5}},
	"Na+":     {1, map[string]float64{"Na": 1}, SpeciesData{-261881, 58.41, -1.21e-6}},
	"Cl-":     {-1, map[string]float64{"Cl": 1}, SpeciesData{-131290, 56.73, 1.73e-5}},
	"CO2(aq)": {0, map[string]float64{"C": 1, "O": 2}, SpeciesData{-385974, 117.57, 3.28e-5}},
	"HCO3-":   {-1, map[string]float64{"H": 1, "C": 1, "O": 3}, SpeciesData{-586940, 98.4, 2.42e-5}},
	"CO3--":   {-2, map[string]float64{"C": 1, "O": 3}, SpeciesData{-527983, -50.0, -6.1e-6}},
	"Ca++":    {2, map[string]float64{"Ca": 1}, SpeciesData{-552790, -56.48, -1.84e-5}},
	"Fe++":    {2, map[string]float64{"Fe": 1}, SpeciesData{-91504, -105.86, -2.22e-5}},
	"Fe+++":   {3, map[string]float64{"Fe": 1}, SpeciesData{-17238, -277.4, -3.7e-5}},

	// Gases.
	"H2O(g)": {0, map[string]float64{"H": 2, "O": 1}, SpeciesData{-228582, 188.83, 0}},
	"CO2(g)": {0, map[string]float64{"C": 1, "O": 2}, SpeciesData{-394359, 213.8, 0}},
	"O2(g)":  {0, map[string]float64{"O": 2}, SpeciesData{0, 205.15, 0}},
	"H2(g)":  {0, map[string]float64{"H": 2}, SpeciesData{0, 130.68, 0}},

	// Minerals.
	"Calcite": {0, map[string]float64{"Ca": 1, "C": 1, "O": 3}, SpeciesData{-1128790, 91.71, 3.6934e-5}},
	"Halite":  {0, map[string]float64{"Na": 1, "Cl": 1}, SpeciesData{-384138, 72.11, 2.7015e-5}},
}

// DatabaseSpecies returns the named species from Database together
// with its reference data.
func DatabaseSpecies(name string) (thermochem.Species, SpeciesData, error) {
	e, ok := Database[name]
	if !ok {
		return thermochem.Species{}, SpeciesData{}, fmt.Errorf("idealchem: species '%s' is not in the database", name)
	}
	comp := make(map[thermochem.Element]float64)
	for el, a := range e.Composition {
		comp[thermochem.Element{Name: el, MolarMass: ElementMolarMasses[el]}] = a
	}
	return thermochem.NewSpecies(name, e.Charge, comp), e.SpeciesData, nil
}

// PhaseSpec names the species of one phase to be taken from Database.
type PhaseSpec struct {
	Name    string
	Kind    thermochem.PhaseKind
	Species []string
}

// DatabaseSystem creates a chemical system from species in Database.
func DatabaseSystem(phases []PhaseSpec, opts ...Option) (*thermochem.ChemicalSystem, error) {
	var ph []thermochem.Phase
	var data []SpeciesData
	for _, p := range phases {
		phase := thermochem.Phase{Name: p.Name, Kind: p.Kind}
		for _, name := range p.Species {
			s, d, err := DatabaseSpecies(name)
			if err != nil {
				return nil, err
			}
			phase.Species = append(phase.Species, s)
			data = append(data, d)
		}
		ph = append(ph, phase)
	}
	return NewSystem(ph, data, opts...)
}

// DatabaseNames returns the names of the species in Database, sorted.
func DatabaseNames() []string {
	o := make([]string, 0, len(Database))
	for n := range Database {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}
