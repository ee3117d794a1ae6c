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

	"gonum.org/v1/gonum/floats"
)

// ChemicalState is an assignment of temperature, pressure and species
// amounts to a chemical system.
type ChemicalState struct {
	system *ChemicalSystem
	t, p   float64
	n      []float64
}

// NewChemicalState returns a state of sys at the reference temperature
// and pressure with all species amounts set to zero.
func NewChemicalState(sys *ChemicalSystem) *ChemicalState {
	return &ChemicalState{
		system: sys,
		t:      ReferenceTemperature,
		p:      ReferencePressure,
		n:      make([]float64, sys.NumSpecies()),
	}
}

// System returns the chemical system the state refers to.
func (s *ChemicalState) System() *ChemicalSystem { return s.system }

// SetTemperature sets the temperature [K].
func (s *ChemicalState) SetTemperature(T float64) { s.t = T }

// SetPressure sets the pressure [Pa].
func (s *ChemicalState) SetPressure(P float64) { s.p = P }

// SetSpeciesAmounts sets the amounts of all species [mol].
func (s *ChemicalState) SetSpeciesAmounts(n []float64) error {
	if err := s.system.checkAmounts(n); err != nil {
		return err
	}
	copy(s.n, n)
	return nil
}

// SetSpeciesAmount sets the amount of species i [mol].
func (s *ChemicalState) SetSpeciesAmount(i int, v float64) { s.n[i] = v }

// SetSpeciesAmountByName sets the amount of the named species [mol].
func (s *ChemicalState) SetSpeciesAmountByName(name string, v float64) error {
	i := s.system.SpeciesIndex(name)
	if i == s.system.NumSpecies() {
		return fmt.Errorf("thermochem: there is no species named '%s' in the system", name)
	}
	s.n[i] = v
	return nil
}

// Temperature returns the temperature [K].
func (s *ChemicalState) Temperature() float64 { return s.t }

// Pressure returns the pressure [Pa].
func (s *ChemicalState) Pressure() float64 { return s.p }

// SpeciesAmounts returns a copy of the species amounts [mol].
func (s *ChemicalState) SpeciesAmounts() []float64 {
	o := make([]float64, len(s.n))
	copy(o, s.n)
	return o
}

// SpeciesAmount returns the amount of species i [mol].
func (s *ChemicalState) SpeciesAmount(i int) float64 { return s.n[i] }

// ElementAmounts returns the amounts of the elements [mol], followed by
// the total charge.
func (s *ChemicalState) ElementAmounts() []float64 {
	b, err := s.system.ElementAmounts(s.n)
	if err != nil {
		panic(err) // s.n always has the right length.
	}
	return b
}

// PhaseAmounts returns the total amount of species in each phase [mol].
func (s *ChemicalState) PhaseAmounts() []float64 {
	o := make([]float64, s.system.NumPhases())
	for i := range o {
		off := s.system.PhaseOffset(i)
		o[i] = floats.Sum(s.n[off : off+s.system.NumSpeciesInPhase(i)])
	}
	return o
}

// Clone returns a deep copy of s that shares the same system.
func (s *ChemicalState) Clone() *ChemicalState {
	return &ChemicalState{
		system: s.system,
		t:      s.t,
		p:      s.p,
		n:      s.SpeciesAmounts(),
	}
}

// Properties evaluates the thermodynamic model of the system at this state.
func (s *ChemicalState) Properties() (*ChemicalProperties, error) {
	p := NewChemicalProperties(s.system)
	if err := p.Update(s.t, s.p, s.n); err != nil {
		return nil, err
	}
	return p, nil
}
