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

package thermochem

import (
	"fmt"
	"sort"
)

// Species is a chemical species and its elemental composition.
type Species struct {
	Name    string
	Formula string

	// MolarMass is the molar mass of the species [kg/mol].
	MolarMass float64

	// Charge is the electric charge of the species. It must agree
	// with the implicit charge row of the formula matrix.
	Charge float64

	// Elements and Atoms give the elemental composition: species
	// contains Atoms[i] atoms of Elements[i].
	Elements []Element
	Atoms    []float64
}

// ElementCoefficient returns the number of atoms of the named element
// in s, or zero if s does not contain the element.
func (s Species) ElementCoefficient(name string) float64 {
	for i, e := range s.Elements {
		if e.Name == name {
			return s.Atoms[i]
		}
	}
	return 0
}

// NewSpecies creates a species from a composition map. The molar mass
// is calculated from the element molar masses.
func NewSpecies(name string, charge float64, composition map[Element]float64) Species {
	s := Species{
		Name:    name,
		Formula: name,
		Charge:  charge,
	}
	for e := range composition {
		s.Elements = append(s.Elements, e)
	}
	// Map iteration order is random; keep the composition ordered.
	sort.Sort(Elements(s.Elements))
	for _, e := range s.Elements {
		a := composition[e]
		s.Atoms = append(s.Atoms, a)
		s.MolarMass += a * e.MolarMass
	}
	return s
}

func (s Species) String() string {
	return fmt.Sprintf("%s (z=%g, M=%g kg/mol)", s.Name, s.Charge, s.MolarMass)
}
