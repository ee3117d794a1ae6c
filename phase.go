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

import "fmt"

// PhaseKind specifies the physical state of a phase.
type PhaseKind int

// Phase kinds. The zero value is Unknown, so a phase is only treated
// as aqueous when its kind says so.
const (
	Unknown PhaseKind = iota
	Aqueous
	Gaseous
	Liquid
	Solid
)

func (k PhaseKind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Aqueous:
		return "aqueous"
	case Gaseous:
		return "gaseous"
	case Liquid:
		return "liquid"
	case Solid:
		return "solid"
	default:
		return fmt.Sprintf("PhaseKind(%d)", int(k))
	}
}

// Phase is a group of species sharing a physical state. The order of
// Species is fixed for the lifetime of the system the phase belongs to
// and determines the index of each species in every vector and matrix
// keyed by species.
type Phase struct {
	Name    string
	Kind    PhaseKind
	Species []Species
}

// NumSpecies returns the number of species in the phase.
func (p Phase) NumSpecies() int { return len(p.Species) }

// SpeciesIndex returns the index of the named species within the phase,
// or the number of species in the phase if it is not present.
func (p Phase) SpeciesIndex(name string) int {
	for i, s := range p.Species {
		if s.Name == name {
			return i
		}
	}
	return len(p.Species)
}
