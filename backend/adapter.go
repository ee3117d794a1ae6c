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

package backend

import (
	"sync"

	"github.com/spatialmodel/thermochem"
)

// AdapterModel is a thermochem.Model that evaluates properties with a
// solver session. It owns a clone of the session it was created from,
// so evaluations do not change the state of the original session, and
// it holds a lock for the duration of each evaluation.
//
// The solver computes no derivatives. Every vector returned by an
// AdapterModel has zero derivative channels and DerivativesUnavailable
// set; the zeros do not mean the properties are insensitive to
// temperature, pressure or composition.
type AdapterModel struct {
	mx      sync.Mutex
	session *Session
}

// NewAdapterModel returns a model that evaluates properties with a
// clone of s.
func NewAdapterModel(s *Session) *AdapterModel {
	return &AdapterModel{session: s.Clone()}
}

// GibbsEnergies fulfils the thermochem.Model interface.
func (m *AdapterModel) GibbsEnergies(T, P float64) thermochem.ThermoVector {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.session.SetTemperature(T)
	m.session.SetPressure(P)
	v := thermochem.NewThermoVector(m.session.NumSpecies())
	copy(v.Val, m.session.GibbsEnergies())
	v.DerivativesUnavailable = true
	return v
}

// ChemicalPotentials fulfils the thermochem.Model interface. It panics
// if n does not have one amount per species.
func (m *AdapterModel) ChemicalPotentials(T, P float64, n []float64) thermochem.ChemicalVector {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.session.SetTemperature(T)
	m.session.SetPressure(P)
	if err := m.session.SetSpeciesAmounts(n); err != nil {
		panic(err)
	}
	N := m.session.NumSpecies()
	v := thermochem.NewChemicalVector(N, N)
	copy(v.Val, m.session.ChemicalPotentials())
	v.DerivativesUnavailable = true
	return v
}

// DerivativesAvailable fulfils the thermochem.Model interface. It
// always returns false.
func (m *AdapterModel) DerivativesAvailable() bool { return false }

// phaseKinds maps solver phase classes to phase kinds. Other classes
// map to thermochem.Unknown.
var phaseKinds = map[byte]thermochem.PhaseKind{
	'a': thermochem.Aqueous,
	'g': thermochem.Gaseous,
	'l': thermochem.Liquid,
	's': thermochem.Solid,
}

// ToChemicalSystem creates a chemical system with the topology of s.
// Its properties are evaluated by an AdapterModel over a clone of s.
func ToChemicalSystem(s *Session) *thermochem.ChemicalSystem {
	elements := make([]thermochem.Element, s.NumElements())
	for i := range elements {
		elements[i] = thermochem.Element{
			Name:      s.ElementName(i),
			MolarMass: s.ElementMolarMass(i),
		}
	}
	phases := make([]thermochem.Phase, s.NumPhases())
	var j int
	for k := range phases {
		kind, ok := phaseKinds[s.PhaseClass(k)]
		if !ok {
			kind = thermochem.Unknown
		}
		phases[k] = thermochem.Phase{Name: s.PhaseName(k), Kind: kind}
		for end := j + s.NumSpeciesInPhase(k); j < end; j++ {
			comp := make(map[thermochem.Element]float64)
			for i, a := range s.ElementsInSpecies(j) {
				comp[elements[i]] = a
			}
			sp := thermochem.NewSpecies(s.SpeciesName(j), s.SpeciesCharge(j), comp)
			sp.MolarMass = s.SpeciesMolarMass(j)
			phases[k].Species = append(phases[k].Species, sp)
		}
	}
	return thermochem.NewChemicalSystem(phases, NewAdapterModel(s))
}

// ToChemicalState creates a chemical system from s as ToChemicalSystem
// does and returns a state holding the current temperature, pressure
// and species amounts of s.
func ToChemicalState(s *Session) *thermochem.ChemicalState {
	st := thermochem.NewChemicalState(ToChemicalSystem(s))
	st.SetTemperature(s.Temperature())
	st.SetPressure(s.Pressure())
	if err := st.SetSpeciesAmounts(s.SpeciesAmounts()); err != nil {
		panic(err) // The system has the species of s.
	}
	return st
}
