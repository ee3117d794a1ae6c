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

// Package thermochem evaluates thermodynamic and chemical properties of
// multi-phase, multi-species chemical systems, together with their
// first-order sensitivities with respect to temperature, pressure and
// species amounts.
//
// Units are fixed throughout: molar mass in kg/mol, amount in mol,
// temperature in K, pressure in Pa, Gibbs energy and chemical potential
// in J/mol and reduction potential in V.
//
// Name lookups (ElementIndex, SpeciesIndex, PhaseIndex) return the size
// of the searched collection when the name is not found. Callers detect
// absence by comparing the result against the count.
package thermochem

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ChemicalSystem holds the phases of a chemical system and the model
// used to calculate the thermodynamic properties of its species.
// The species of all phases, concatenated in phase order, define the
// global species index used by every vector and matrix keyed by species.
type ChemicalSystem struct {
	phases  []Phase
	model   Model
	species []Species

	// elements are the distinct elements of all species, sorted by name.
	elements Elements

	// offsets[i] is the global index of the first species of phase i.
	offsets []int

	// phaseOf[i] is the index of the phase containing species i.
	phaseOf []int

	formula *mat.Dense
}

// NewChemicalSystem creates a new chemical system from the given phases
// and model.
func NewChemicalSystem(phases []Phase, model Model) *ChemicalSystem {
	s := &ChemicalSystem{
		phases:  phases,
		model:   model,
		offsets: make([]int, len(phases)),
	}
	for i, p := range phases {
		s.offsets[i] = len(s.species)
		for _, sp := range p.Species {
			s.species = append(s.species, sp)
			s.phaseOf = append(s.phaseOf, i)
		}
	}
	s.elements = uniqueElements(s.species)
	s.formula = formulaMatrix(s.elements, s.species)
	return s
}

// formulaMatrix returns the (E+1)×N matrix of element and charge
// coefficients.
func formulaMatrix(elements Elements, species []Species) *mat.Dense {
	if len(species) == 0 {
		return nil
	}
	a := mat.NewDense(len(elements)+1, len(species), nil)
	for j, s := range species {
		for i, e := range elements {
			a.Set(i, j, s.ElementCoefficient(e.Name))
		}
		a.Set(len(elements), j, s.Charge)
	}
	return a
}

// Model returns the thermodynamic model of the system.
func (s *ChemicalSystem) Model() Model { return s.model }

// DerivativesAvailable returns whether the model of the system computes
// derivative channels.
func (s *ChemicalSystem) DerivativesAvailable() bool {
	return s.model != nil && s.model.DerivativesAvailable()
}

// Phases returns the phases in the system.
func (s *ChemicalSystem) Phases() []Phase { return s.phases }

// Phase returns phase i.
func (s *ChemicalSystem) Phase(i int) Phase { return s.phases[i] }

// NumPhases returns the number of phases.
func (s *ChemicalSystem) NumPhases() int { return len(s.phases) }

// NumSpecies returns the number of species in all phases.
func (s *ChemicalSystem) NumSpecies() int { return len(s.species) }

// NumElements returns the number of elements, not counting the
// implicit charge element.
func (s *ChemicalSystem) NumElements() int { return len(s.elements) }

// Species returns all species in global index order.
func (s *ChemicalSystem) Species() []Species { return s.species }

// SpeciesAt returns species i.
func (s *ChemicalSystem) SpeciesAt(i int) Species { return s.species[i] }

// Elements returns the elements of the system sorted by name.
func (s *ChemicalSystem) Elements() Elements { return s.elements }

// Element returns element i.
func (s *ChemicalSystem) Element(i int) Element { return s.elements[i] }

// NumSpeciesInPhase returns the number of species in phase i.
func (s *ChemicalSystem) NumSpeciesInPhase(i int) int { return len(s.phases[i].Species) }

// PhaseOffset returns the global index of the first species in phase i.
func (s *ChemicalSystem) PhaseOffset(i int) int { return s.offsets[i] }

// PhaseIndexOfSpecies returns the index of the phase containing species i.
func (s *ChemicalSystem) PhaseIndexOfSpecies(i int) int { return s.phaseOf[i] }

// ElementIndex returns the index of the named element, or
// NumElements() if there is no such element.
func (s *ChemicalSystem) ElementIndex(name string) int { return s.elements.Index(name) }

// SpeciesIndex returns the index of the named species, or
// NumSpecies() if there is no such species.
func (s *ChemicalSystem) SpeciesIndex(name string) int {
	for i, sp := range s.species {
		if sp.Name == name {
			return i
		}
	}
	return len(s.species)
}

// PhaseIndex returns the index of the named phase, or
// NumPhases() if there is no such phase.
func (s *ChemicalSystem) PhaseIndex(name string) int {
	for i, p := range s.phases {
		if p.Name == name {
			return i
		}
	}
	return len(s.phases)
}

// AqueousPhaseIndex returns the index of the first aqueous phase, or
// NumPhases() if the system has no aqueous phase.
func (s *ChemicalSystem) AqueousPhaseIndex() int {
	for i, p := range s.phases {
		if p.Kind == Aqueous {
			return i
		}
	}
	return len(s.phases)
}

// FormulaMatrix returns the E×N formula matrix, where element [e, j] is
// the number of atoms of element e in species j.
func (s *ChemicalSystem) FormulaMatrix() *mat.Dense {
	if s.formula == nil || len(s.elements) == 0 {
		return nil
	}
	return mat.DenseCopyOf(s.formula.Slice(0, len(s.elements), 0, len(s.species)))
}

// FormulaMatrixWithCharge returns the (E+1)×N formula matrix whose last
// row holds the charge of each species.
func (s *ChemicalSystem) FormulaMatrixWithCharge() *mat.Dense {
	if s.formula == nil {
		return nil
	}
	return mat.DenseCopyOf(s.formula)
}

// MolarMasses returns the molar masses of all species [kg/mol].
func (s *ChemicalSystem) MolarMasses() []float64 {
	o := make([]float64, len(s.species))
	for i, sp := range s.species {
		o[i] = sp.MolarMass
	}
	return o
}

// Charges returns the charges of all species.
func (s *ChemicalSystem) Charges() []float64 {
	o := make([]float64, len(s.species))
	for i, sp := range s.species {
		o[i] = sp.Charge
	}
	return o
}

// ElementAmounts returns the amounts of the elements [mol] for species
// amounts n, followed by the total charge.
func (s *ChemicalSystem) ElementAmounts(n []float64) ([]float64, error) {
	if err := s.checkAmounts(n); err != nil {
		return nil, err
	}
	if s.formula == nil {
		return []float64{0}, nil
	}
	b := mat.NewVecDense(len(s.elements)+1, nil)
	b.MulVec(s.formula, mat.NewVecDense(len(n), n))
	return b.RawVector().Data, nil
}

// GibbsEnergies returns the standard molar Gibbs energies [J/mol] of all
// species at temperature T [K] and pressure P [Pa].
func (s *ChemicalSystem) GibbsEnergies(T, P float64) ThermoVector {
	return s.model.GibbsEnergies(T, P)
}

// ChemicalPotentials returns the chemical potentials [J/mol] of all
// species at temperature T [K], pressure P [Pa] and species amounts n [mol].
func (s *ChemicalSystem) ChemicalPotentials(T, P float64, n []float64) ChemicalVector {
	return s.model.ChemicalPotentials(T, P, n)
}

func (s *ChemicalSystem) checkAmounts(n []float64) error {
	if len(n) != len(s.species) {
		return fmt.Errorf("thermochem: species amount vector has length %d but the system has %d species",
			len(n), len(s.species))
	}
	return nil
}

func (s *ChemicalSystem) String() string {
	return fmt.Sprintf("ChemicalSystem{%d phases, %d species, %d elements}",
		len(s.phases), len(s.species), len(s.elements))
}
