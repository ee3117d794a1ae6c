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
	"sort"

	"github.com/ctessum/unit"
)

// Element is a chemical element. Elements are immutable values; they
// compare and sort by name.
type Element struct {
	// Name is the element symbol, e.g. "H".
	Name string

	// MolarMass is the molar mass of the element [kg/mol].
	MolarMass float64
}

// Less returns whether e sorts before o.
func (e Element) Less(o Element) bool { return e.Name < o.Name }

// Equal returns whether e and o are the same element.
func (e Element) Equal(o Element) bool { return e.Name == o.Name }

// MolarMassUnit returns the molar mass of e with dimensions attached.
func (e Element) MolarMassUnit() *unit.Unit { return MolarMassUnit(e.MolarMass) }

// Elements is a list of elements that can be sorted by name.
type Elements []Element

func (e Elements) Len() int           { return len(e) }
func (e Elements) Less(i, j int) bool { return e[i].Less(e[j]) }
func (e Elements) Swap(i, j int)      { e[i], e[j] = e[j], e[i] }

// Index returns the index of the element with the given name,
// or len(e) if there is no such element.
func (e Elements) Index(name string) int {
	for i, el := range e {
		if el.Name == name {
			return i
		}
	}
	return len(e)
}

// uniqueElements returns the distinct elements contained in
// the given species, sorted by name.
func uniqueElements(species []Species) Elements {
	seen := make(map[string]struct{})
	var o Elements
	for _, s := range species {
		for _, e := range s.Elements {
			if _, ok := seen[e.Name]; ok {
				continue
			}
			seen[e.Name] = struct{}{}
			o = append(o, e)
		}
	}
	sort.Sort(o)
	return o
}
