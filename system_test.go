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
	"testing"

	"gonum.org/v1/gonum/mat"
)

var (
	elH = Element{Name: "H", MolarMass: 0.00100794}
	elO = Element{Name: "O", MolarMass: 0.0159994}
)

// testPhases returns an aqueous phase with water, H+, OH- and O2(aq),
// and a gas phase with O2(g).
func testPhases() []Phase {
	return []Phase{
		{
			Name: "Aqueous",
			Kind: Aqueous,
			Species: []Species{
				NewSpecies("H2O(l)", 0, map[Element]float64{elH: 2, elO: 1}),
				NewSpecies("H+", 1, map[Element]float64{elH: 1}),
				NewSpecies("OH-", -1, map[Element]float64{elO: 1, elH: 1}),
				NewSpecies("O2(aq)", 0, map[Element]float64{elO: 2}),
			},
		},
		{
			Name:    "Gaseous",
			Kind:    Gaseous,
			Species: []Species{NewSpecies("O2(g)", 0, map[Element]float64{elO: 2})},
		},
	}
}

// constantModel returns a model with fixed standard Gibbs energies and
// chemical potentials, counting how many times each is evaluated.
func constantModel(g0, u []float64, gCalls, uCalls *int) NativeModel {
	return NativeModel{
		GibbsEnergyFunc: func(T, P float64) ThermoVector {
			if gCalls != nil {
				*gCalls++
			}
			v := NewThermoVector(len(g0))
			copy(v.Val, g0)
			return v
		},
		ChemicalPotentialFunc: func(T, P float64, n []float64) ChemicalVector {
			if uCalls != nil {
				*uCalls++
			}
			v := NewChemicalVector(len(u), len(n))
			copy(v.Val, u)
			return v
		},
	}
}

func TestSystemTopology(t *testing.T) {
	sys := NewChemicalSystem(testPhases(), constantModel(make([]float64, 5), make([]float64, 5), nil, nil))
	if sys.NumPhases() != 2 || sys.NumSpecies() != 5 || sys.NumElements() != 2 {
		t.Fatalf("have %s", sys)
	}
	if sys.PhaseOffset(1) != 4 || sys.PhaseIndexOfSpecies(4) != 1 || sys.NumSpeciesInPhase(0) != 4 {
		t.Error("incorrect phase layout")
	}
	if i := sys.SpeciesIndex("OH-"); i != 2 {
		t.Errorf("species index: have %d, want 2", i)
	}
	if i := sys.ElementIndex("O"); i != 1 {
		t.Errorf("element index: have %d, want 1", i)
	}
	if i := sys.AqueousPhaseIndex(); i != 0 {
		t.Errorf("aqueous phase index: have %d, want 0", i)
	}
	if !sys.DerivativesAvailable() {
		t.Error("native models have derivatives")
	}
	mw := sys.MolarMasses()
	if different(mw[0], 2*elH.MolarMass+elO.MolarMass, 1.e-12) {
		t.Errorf("water molar mass: have %g", mw[0])
	}
}

func TestLookupSentinels(t *testing.T) {
	sys := NewChemicalSystem(testPhases(), nil)
	if i := sys.ElementIndex("Zzz"); i != sys.NumElements() {
		t.Errorf("element: have %d, want %d", i, sys.NumElements())
	}
	if i := sys.SpeciesIndex("Zzz"); i != sys.NumSpecies() {
		t.Errorf("species: have %d, want %d", i, sys.NumSpecies())
	}
	if i := sys.PhaseIndex("Zzz"); i != sys.NumPhases() {
		t.Errorf("phase: have %d, want %d", i, sys.NumPhases())
	}
	if i := sys.Phase(0).SpeciesIndex("Zzz"); i != sys.Phase(0).NumSpecies() {
		t.Errorf("phase species: have %d", i)
	}
	if sys.DerivativesAvailable() {
		t.Error("a system without a model has no derivatives")
	}
}

func TestFormulaMatrix(t *testing.T) {
	sys := NewChemicalSystem(testPhases(), nil)
	a := sys.FormulaMatrix()
	r, c := a.Dims()
	if r != sys.NumElements() || c != sys.NumSpecies() {
		t.Fatalf("shape: have %d×%d, want %d×%d", r, c, sys.NumElements(), sys.NumSpecies())
	}
	want := mat.NewDense(2, 5, []float64{
		2, 1, 1, 0, 0, // H
		1, 0, 1, 2, 2, // O
	})
	if !mat.Equal(a, want) {
		t.Errorf("have %v, want %v", mat.Formatted(a), mat.Formatted(want))
	}
	az := sys.FormulaMatrixWithCharge()
	for j, s := range sys.Species() {
		if z := az.At(sys.NumElements(), j); z != s.Charge {
			t.Errorf("%s: charge row has %g, want %g", s.Name, z, s.Charge)
		}
	}
}

func TestElementAmounts(t *testing.T) {
	sys := NewChemicalSystem(testPhases(), nil)
	b, err := sys.ElementAmounts([]float64{1, 0.5, 0.25, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2.75, 11.25, 0.25}
	for i := range want {
		if different(b[i], want[i], 1.e-12) {
			t.Errorf("%d: have %g, want %g", i, b[i], want[i])
		}
	}
	if _, err := sys.ElementAmounts([]float64{1}); err == nil {
		t.Error("expected a length error")
	}
}

func TestChemicalState(t *testing.T) {
	sys := NewChemicalSystem(testPhases(), nil)
	s := NewChemicalState(sys)
	if s.Temperature() != ReferenceTemperature || s.Pressure() != ReferencePressure {
		t.Errorf("defaults: have %g K, %g Pa", s.Temperature(), s.Pressure())
	}
	if err := s.SetSpeciesAmountByName("O2(g)", 2); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSpeciesAmountByName("N2(g)", 2); err == nil {
		t.Error("expected an error for an unknown species")
	}
	s.SetSpeciesAmount(0, 55)
	pa := s.PhaseAmounts()
	if pa[0] != 55 || pa[1] != 2 {
		t.Errorf("phase amounts: have %v", pa)
	}
	c := s.Clone()
	c.SetSpeciesAmount(0, 1)
	if s.SpeciesAmount(0) != 55 {
		t.Error("Clone should copy the amounts")
	}
	if err := s.SetSpeciesAmounts([]float64{1}); err == nil {
		t.Error("expected a length error")
	}
}
